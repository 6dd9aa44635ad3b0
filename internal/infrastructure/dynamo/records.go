package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/staff-portal/internal/domain"
)

// RecordRepo reads the three per-employee record tables. Records are written by
// the payroll and HR systems upstream; the portal only reads them, except for seeding.
type RecordRepo struct {
	client           *dynamodb.Client
	salaryTable      string
	expenseTable     string
	performanceTable string
}

func NewRecordRepo(client *dynamodb.Client, salaries, expenses, performance string) *RecordRepo {
	return &RecordRepo{client: client, salaryTable: salaries, expenseTable: expenses, performanceTable: performance}
}

// ListPayroll returns salary sheets, most recently issued first.
func (r *RecordRepo) ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error) {
	records := []domain.PayrollRecord{}
	in := newestFirst(r.salaryTable, indexFileSorted, "file_number", fileNumber)
	if err := queryAll(ctx, r.client, in, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RecordRepo) GetPayroll(ctx context.Context, recordID string) (*domain.PayrollRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.salaryTable),
		Key:       strKey("record_id", recordID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("payroll record not found: %w", domain.ErrNotFound)
	}
	var p domain.PayrollRecord
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListExpenses returns expense claims ordered by expense date, latest first.
func (r *RecordRepo) ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error) {
	records := []domain.ExpenseRecord{}
	in := newestFirst(r.expenseTable, indexFileSorted, "file_number", fileNumber)
	if err := queryAll(ctx, r.client, in, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListPerformance returns evaluations ordered by year then month, latest first.
// The GSI sort key is the zero-padded YYYY-MM period so string order matches.
func (r *RecordRepo) ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error) {
	records := []domain.PerformanceRecord{}
	in := newestFirst(r.performanceTable, indexFilePeriod, "file_number", fileNumber)
	if err := queryAll(ctx, r.client, in, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RecordRepo) PutPayroll(ctx context.Context, p *domain.PayrollRecord) error {
	return r.put(ctx, r.salaryTable, p, p.CreatedAt)
}

func (r *RecordRepo) PutExpense(ctx context.Context, e *domain.ExpenseRecord) error {
	return r.put(ctx, r.expenseTable, e, e.ExpenseDate)
}

func (r *RecordRepo) PutPerformance(ctx context.Context, p *domain.PerformanceRecord) error {
	p.Period = domain.Period(p.Year, p.Month)
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return r.putItem(ctx, r.performanceTable, item)
}

// put writes a record whose GSI orders by at.
func (r *RecordRepo) put(ctx context.Context, table string, v interface{}, at time.Time) error {
	item, err := marshalSorted(v, at)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return r.putItem(ctx, table, item)
}

func (r *RecordRepo) putItem(ctx context.Context, table string, item map[string]types.AttributeValue) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return err
}
