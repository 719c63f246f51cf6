package repository

import (
	"context"
	"testing"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteDynamoRepository_CreateAndGet(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewQuoteDynamoRepository(ddb, "")

	validUntil := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	total := decimal.RequireFromString("2450.00")
	q := entities.Quote{
		ID:          "q-1",
		CustomerID:  "cust-1",
		Reference:   "RQ-0001",
		Status:      lifecycle.QuoteStatusQuoted,
		Currency:    "USD",
		TotalAmount: &total,
		Lines:       []entities.QuoteLine{{ProductID: "p-1", Description: "Steel bolts", Quantity: 200}},
		Document:    &entities.QuoteDocument{Bucket: "quotes", Path: "cust-1/q-1.pdf"},
		ValidUntil:  &validUntil,
		CreatedAt:   validUntil.Add(-72 * time.Hour),
	}

	_, err := repo.Create(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, defaultQuotesTableName, *ddb.lastPut.TableName)
	assert.Equal(t, "attribute_not_exists(#id)", *ddb.lastPut.ConditionExpression)

	_, err = repo.Create(context.Background(), q)
	var cfe *types.ConditionalCheckFailedException
	require.ErrorAs(t, err, &cfe)

	got, err := repo.GetByID(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.QuoteStatusQuoted, got.Status)
	require.NotNil(t, got.TotalAmount)
	assert.True(t, got.TotalAmount.Equal(total))
	require.NotNil(t, got.ValidUntil)
	assert.True(t, got.ValidUntil.Equal(validUntil))
	require.NotNil(t, got.Document)
	assert.Equal(t, "cust-1/q-1.pdf", got.Document.Path)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 200, got.Lines[0].Quantity)
}

func TestQuoteDynamoRepository_UpdateStatus(t *testing.T) {
	t.Run("records decline reason", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.updateOut = &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, quoteItem{ID: "q-1", Status: "declined", DeclineReason: "too expensive"})}
		repo := NewQuoteDynamoRepository(ddb, "")

		q, err := repo.UpdateStatus(context.Background(), "q-1", lifecycle.QuoteStatusQuoted, lifecycle.QuoteStatusDeclined, "too expensive")
		require.NoError(t, err)
		assert.Equal(t, lifecycle.QuoteStatusDeclined, q.Status)
		assert.Equal(t, "too expensive", q.DeclineReason)
		assert.Contains(t, *ddb.lastUpd.UpdateExpression, "#decline_reason = :decline_reason")
	})

	t.Run("accept leaves reason alone", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.updateOut = &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, quoteItem{ID: "q-1", Status: "approved"})}
		repo := NewQuoteDynamoRepository(ddb, "")

		_, err := repo.UpdateStatus(context.Background(), "q-1", lifecycle.QuoteStatusQuoted, lifecycle.QuoteStatusApproved, "")
		require.NoError(t, err)
		assert.Equal(t, "SET #status = :status, #updated_at = :updated_at", *ddb.lastUpd.UpdateExpression)
		assert.Equal(t, "attribute_exists(#id) AND #status = :from_status", *ddb.lastUpd.ConditionExpression)
		assert.Equal(t, "quoted", ddb.lastUpd.ExpressionAttributeValues[":from_status"].(*types.AttributeValueMemberS).Value)
		assert.Equal(t, types.ReturnValuesOnConditionCheckFailureAllOld, ddb.lastUpd.ReturnValuesOnConditionCheckFailure)
	})

	t.Run("already decided", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.updateErr = &types.ConditionalCheckFailedException{
			Item: mustMarshal(t, quoteItem{ID: "q-1", Status: "declined"}),
		}
		repo := NewQuoteDynamoRepository(ddb, "")

		_, err := repo.UpdateStatus(context.Background(), "q-1", lifecycle.QuoteStatusQuoted, lifecycle.QuoteStatusApproved, "")
		require.ErrorIs(t, err, interfaces.ErrConcurrentUpdate)
	})

	t.Run("missing record", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.updateErr = &types.ConditionalCheckFailedException{}
		repo := NewQuoteDynamoRepository(ddb, "")

		q, err := repo.UpdateStatus(context.Background(), "q-1", lifecycle.QuoteStatusQuoted, lifecycle.QuoteStatusApproved, "")
		require.NoError(t, err)
		assert.Empty(t, q.ID)
	})
}

func TestQuoteDynamoRepository_ListByCustomerID(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.pages = [][]map[string]types.AttributeValue{
		{mustMarshal(t, quoteItem{ID: "q-1", CustomerID: "cust-1", Status: "expired"})},
	}
	repo := NewQuoteDynamoRepository(ddb, "")

	quotes, err := repo.ListByCustomerID(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, lifecycle.QuoteStatusUnknown, quotes[0].Status)
	assert.Equal(t, "customer_id = :cid", *ddb.queries[0].KeyConditionExpression)
}
