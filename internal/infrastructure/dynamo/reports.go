package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/staff-portal/internal/domain"
)

// ReportRepo provides typed DynamoDB operations for the reports table.
type ReportRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReportRepo(client *dynamodb.Client, tableName string) *ReportRepo {
	return &ReportRepo{client: client, tableName: tableName}
}

// PutIfAbsent writes rep unless an item with the same report_id exists.
// It reports whether the write happened.
func (r *ReportRepo) PutIfAbsent(ctx context.Context, rep *domain.Report) (bool, error) {
	rep.Feed = feedAll
	item, err := marshalSorted(rep, rep.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("marshal report: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(report_id)"),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ReportRepo) Get(ctx context.Context, reportID string) (*domain.Report, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey("report_id", reportID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("report not found: %w", domain.ErrNotFound)
	}
	var rep domain.Report
	if err := attributevalue.UnmarshalMap(out.Item, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// ListByUser returns one employee's reports, newest first.
func (r *ReportRepo) ListByUser(ctx context.Context, userID string) ([]domain.Report, error) {
	reports := []domain.Report{}
	in := newestFirst(r.tableName, indexUserSorted, "user_id", userID)
	if err := queryAll(ctx, r.client, in, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListAll returns every report, newest first.
func (r *ReportRepo) ListAll(ctx context.Context) ([]domain.Report, error) {
	reports := []domain.Report{}
	in := newestFirst(r.tableName, indexFeedSorted, "feed", feedAll)
	if err := queryAll(ctx, r.client, in, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepo) UpdateStatus(ctx context.Context, reportID string, status domain.ReportStatus) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("report_id", reportID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(report_id)"),
	})
	return notFoundOnCondition(err, "report")
}
