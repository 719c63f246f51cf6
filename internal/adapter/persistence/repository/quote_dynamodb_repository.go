package repository

import (
	"context"
	"errors"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "quotes"

type quoteItem struct {
	ID            string             `dynamodbav:"id"`
	CustomerID    string             `dynamodbav:"customer_id"`
	Reference     string             `dynamodbav:"reference"`
	Status        string             `dynamodbav:"status"`
	Currency      string             `dynamodbav:"currency,omitempty"`
	TotalAmount   string             `dynamodbav:"total_amount,omitempty"`
	Lines         []quoteLineItem    `dynamodbav:"lines"`
	Document      *quoteDocumentItem `dynamodbav:"document,omitempty"`
	ValidUntil    string             `dynamodbav:"valid_until,omitempty"`
	SourceOrderID string             `dynamodbav:"source_order_id,omitempty"`
	DeclineReason string             `dynamodbav:"decline_reason,omitempty"`
	CreatedAt     string             `dynamodbav:"created_at"`
	UpdatedAt     string             `dynamodbav:"updated_at"`
}

type quoteLineItem struct {
	ProductID   string `dynamodbav:"product_id"`
	Description string `dynamodbav:"description"`
	Quantity    int    `dynamodbav:"quantity"`
}

type quoteDocumentItem struct {
	Bucket      string `dynamodbav:"bucket"`
	Path        string `dynamodbav:"path"`
	GeneratedAt string `dynamodbav:"generated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)

type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: orDefault(tableName, defaultQuotesTableName),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Quote, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customerIDIndex),
		KeyConditionExpression: aws.String("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})

	quotes := make([]entities.Quote, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			quotes = append(quotes, fromQuoteItem(it))
		}
	}
	return quotes, nil
}

// UpdateStatus moves a quote from one status to another. An empty
// declineReason leaves the stored reason untouched. A quote that is no
// longer in status from yields interfaces.ErrConcurrentUpdate.
func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to lifecycle.QuoteStatus, declineReason string) (entities.Quote, error) {
	expr := "SET #status = :status, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":status":      &types.AttributeValueMemberS{Value: string(to)},
		":from_status": &types.AttributeValueMemberS{Value: string(from)},
		":updated_at":  &types.AttributeValueMemberS{Value: formatTime(r.now())},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	if declineReason != "" {
		expr += ", #decline_reason = :decline_reason"
		values[":decline_reason"] = &types.AttributeValueMemberS{Value: declineReason}
		names["#decline_reason"] = "decline_reason"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:                 aws.String("attribute_exists(#id) AND #status = :from_status"),
		UpdateExpression:                    aws.String(expr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) > 0 {
				return entities.Quote{}, interfaces.ErrConcurrentUpdate
			}
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:            q.ID,
		CustomerID:    q.CustomerID,
		Reference:     q.Reference,
		Status:        string(q.Status),
		Currency:      q.Currency,
		TotalAmount:   formatDecimalPtr(q.TotalAmount),
		Lines:         make([]quoteLineItem, 0, len(q.Lines)),
		ValidUntil:    formatTimePtr(q.ValidUntil),
		SourceOrderID: q.SourceOrderID,
		DeclineReason: q.DeclineReason,
		CreatedAt:     formatTime(q.CreatedAt),
		UpdatedAt:     formatTime(q.UpdatedAt),
	}
	for _, l := range q.Lines {
		it.Lines = append(it.Lines, quoteLineItem{ProductID: l.ProductID, Description: l.Description, Quantity: l.Quantity})
	}
	if q.Document != nil {
		it.Document = &quoteDocumentItem{
			Bucket:      q.Document.Bucket,
			Path:        q.Document.Path,
			GeneratedAt: formatTime(q.Document.GeneratedAt),
		}
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID:            it.ID,
		CustomerID:    it.CustomerID,
		Reference:     it.Reference,
		Status:        lifecycle.ParseQuoteStatus(it.Status),
		Currency:      it.Currency,
		TotalAmount:   parseDecimalPtr(it.TotalAmount),
		Lines:         make([]entities.QuoteLine, 0, len(it.Lines)),
		ValidUntil:    parseTimePtr(it.ValidUntil),
		SourceOrderID: it.SourceOrderID,
		DeclineReason: it.DeclineReason,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
	for _, l := range it.Lines {
		q.Lines = append(q.Lines, entities.QuoteLine{ProductID: l.ProductID, Description: l.Description, Quantity: l.Quantity})
	}
	if it.Document != nil {
		q.Document = &entities.QuoteDocument{
			Bucket:      it.Document.Bucket,
			Path:        it.Document.Path,
			GeneratedAt: parseTime(it.Document.GeneratedAt),
		}
	}
	return q
}
