package database

import (
	"context"
	"testing"

	"trade_portal/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDynamoDB_LocalEndpoint(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	cfg := config.Config{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "local",
		AWSSecretAccessKey: "local",
		DynamoDBEndpoint:   "http://localhost:8000",
	}

	client, err := ConnectDynamoDB(context.Background(), cfg)
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "http://localhost:8000", aws.ToString(opts.BaseEndpoint))
	assert.Equal(t, "us-east-1", opts.Region)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", creds.AccessKeyID)
}

func TestConnectDynamoDB_RegionalEndpoint(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	client, err := ConnectDynamoDB(context.Background(), config.Config{AWSRegion: "sa-east-1", AWSAccessKeyID: "k", AWSSecretAccessKey: "s"})
	require.NoError(t, err)
	assert.Nil(t, client.Options().BaseEndpoint)
}
