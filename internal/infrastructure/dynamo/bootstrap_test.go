package dynamo

import (
	"testing"

	"github.com/staff-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDefinitions_EveryKeyAttributeDefined(t *testing.T) {
	defs := tableDefinitions(config.Load().DynamoTables)
	require.Len(t, defs, 7)

	for _, in := range defs {
		declared := map[string]bool{}
		for _, a := range in.AttributeDefinitions {
			declared[*a.AttributeName] = true
		}
		for _, k := range in.KeySchema {
			assert.True(t, declared[*k.AttributeName], "table %s key %s", *in.TableName, *k.AttributeName)
		}
		used := map[string]bool{*in.KeySchema[0].AttributeName: true}
		for _, idx := range in.GlobalSecondaryIndexes {
			for _, k := range idx.KeySchema {
				assert.True(t, declared[*k.AttributeName], "index %s key %s", *idx.IndexName, *k.AttributeName)
				used[*k.AttributeName] = true
			}
		}
		// DynamoDB rejects attribute definitions that no key uses.
		assert.Len(t, used, len(declared), "table %s", *in.TableName)
	}
}

func TestGSI_HashOnly(t *testing.T) {
	g := gsi(indexFileNumber, "file_number", "")
	assert.Len(t, g.KeySchema, 1)
	assert.Equal(t, indexFileNumber, *g.IndexName)
}

func TestTableDefinitions_TimeOrderedIndexesUseSortKey(t *testing.T) {
	for _, def := range tableDefinitions(config.Load().DynamoTables) {
		for _, idx := range def.GlobalSecondaryIndexes {
			switch *idx.IndexName {
			case indexFeedSorted, indexUserSorted, indexFileSorted:
				require.Len(t, idx.KeySchema, 2, *idx.IndexName)
				assert.Equal(t, fieldSortKey, *idx.KeySchema[1].AttributeName, "%s on %s", *idx.IndexName, *def.TableName)
			}
		}
	}
}
