package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/staff-portal/internal/config"
)

// Index names shared by Bootstrap and the repos that query them.
const (
	indexFileNumber   = "file_number-index"
	indexUserID       = "user_id-index"
	indexRefreshToken = "refresh_token-index"
	indexFeedSorted   = "feed-sort_key-index"
	indexUserSorted   = "user_id-sort_key-index"
	indexFileSorted   = "file_number-sort_key-index"
	indexFilePeriod   = "file_number-period-index"
)

// Bootstrap creates all DynamoDB tables and GSIs if they don't already exist.
// Tables that already exist are skipped.
func Bootstrap(ctx context.Context, client *dynamodb.Client, tables config.DynamoTables) {
	for _, in := range tableDefinitions(tables) {
		createTable(ctx, client, in)
	}
	enableTTL(ctx, client, tables.Sessions, fieldRefreshExpiresAt)
}

func tableDefinitions(tables config.DynamoTables) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		table(tables.Users, "user_id",
			[]string{"file_number"},
			gsi(indexFileNumber, "file_number", "")),
		table(tables.Sessions, "session_id",
			[]string{"user_id", "refresh_token"},
			gsi(indexUserID, "user_id", ""),
			gsi(indexRefreshToken, "refresh_token", "")),
		table(tables.Notifications, "notification_id",
			[]string{"feed", fieldSortKey},
			gsi(indexFeedSorted, "feed", fieldSortKey)),
		table(tables.Reports, "report_id",
			[]string{"user_id", "feed", fieldSortKey},
			gsi(indexUserSorted, "user_id", fieldSortKey),
			gsi(indexFeedSorted, "feed", fieldSortKey)),
		table(tables.Salaries, "record_id",
			[]string{"file_number", fieldSortKey},
			gsi(indexFileSorted, "file_number", fieldSortKey)),
		table(tables.Expenses, "record_id",
			[]string{"file_number", fieldSortKey},
			gsi(indexFileSorted, "file_number", fieldSortKey)),
		table(tables.Performance, "record_id",
			[]string{"file_number", "period"},
			gsi(indexFilePeriod, "file_number", "period")),
	}
}

// table builds a pay-per-request table keyed by a string hash key. Every GSI key
// attribute must be listed in attrs; all of them are strings.
func table(name, hashKey string, attrs []string, indexes ...types.GlobalSecondaryIndex) *dynamodb.CreateTableInput {
	defs := []types.AttributeDefinition{
		{AttributeName: aws.String(hashKey), AttributeType: types.ScalarAttributeTypeS},
	}
	for _, a := range attrs {
		defs = append(defs, types.AttributeDefinition{AttributeName: aws.String(a), AttributeType: types.ScalarAttributeTypeS})
	}
	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: defs,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
		},
	}
	if len(indexes) > 0 {
		in.GlobalSecondaryIndexes = indexes
	}
	return in
}

// gsi builds a GSI descriptor. If sortKey is empty, only a hash key is added.
func gsi(indexName, hashKey, sortKey string) types.GlobalSecondaryIndex {
	ks := []types.KeySchemaElement{
		{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
	}
	if sortKey != "" {
		ks = append(ks, types.KeySchemaElement{
			AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange,
		})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(indexName),
		KeySchema:  ks,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException means the table already exists.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			slog.Warn("could not create table", "table", *input.TableName, "err", err)
		}
	} else {
		slog.Info("created table", "table", *input.TableName)
	}
}

func enableTTL(ctx context.Context, client *dynamodb.Client, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		slog.Warn("could not enable TTL", "table", tableName, "err", err)
	}
}
