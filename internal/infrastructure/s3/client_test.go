package s3infra

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementKey(t *testing.T) {
	assert.Equal(t, "statements/1001/01HX.html", StatementKey("1001", "01HX"))
}

func TestPresignedURL_SignsLocally(t *testing.T) {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		BaseEndpoint: aws.String("http://localhost:4566"),
		UsePathStyle: true,
	})
	store := NewStore(client, "statements-bucket", 15*time.Minute)

	url, err := store.PresignedURL(context.Background(), StatementKey("1001", "r1"))
	require.NoError(t, err)
	assert.Contains(t, url, "statements-bucket/statements/1001/r1.html")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
