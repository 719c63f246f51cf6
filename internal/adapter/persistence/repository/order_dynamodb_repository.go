package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultOrdersTableName = "orders"

type orderItem struct {
	ID                     string              `dynamodbav:"id"`
	OrderNumber            string              `dynamodbav:"order_number"`
	CustomerID             string              `dynamodbav:"customer_id"`
	QuoteID                string              `dynamodbav:"quote_id,omitempty"`
	Status                 string              `dynamodbav:"status"`
	Currency               string              `dynamodbav:"currency"`
	TotalAmount            string              `dynamodbav:"total_amount,omitempty"`
	PaymentAmountConfirmed string              `dynamodbav:"payment_amount_confirmed,omitempty"`
	PaymentConfirmedAt     string              `dynamodbav:"payment_confirmed_at,omitempty"`
	PaymentProof           *paymentProofItem   `dynamodbav:"payment_proof,omitempty"`
	DeliveryAddressID      string              `dynamodbav:"delivery_address_id,omitempty"`
	Carrier                string              `dynamodbav:"carrier,omitempty"`
	TrackingNumber         string              `dynamodbav:"tracking_number,omitempty"`
	LineItems              []lineItemItem      `dynamodbav:"line_items"`
	Issues                 []deliveryIssueItem `dynamodbav:"issues,omitempty"`
	CreatedAt              string              `dynamodbav:"created_at"`
	UpdatedAt              string              `dynamodbav:"updated_at"`
	Version                int64               `dynamodbav:"version,omitempty"`
}

type paymentProofItem struct {
	Bucket     string `dynamodbav:"bucket"`
	Path       string `dynamodbav:"path"`
	Status     string `dynamodbav:"status"`
	UploadedAt string `dynamodbav:"uploaded_at"`
	ExpiresAt  string `dynamodbav:"expires_at,omitempty"`
}

type lineItemItem struct {
	ProductID   string `dynamodbav:"product_id"`
	Description string `dynamodbav:"description"`
	Quantity    int    `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
}

type deliveryIssueItem struct {
	ID          string `dynamodbav:"id"`
	Category    string `dynamodbav:"category"`
	Description string `dynamodbav:"description"`
	ReportedAt  string `dynamodbav:"reported_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
//
// Orders are created by the back office; the portal only reads and patches them.

type OrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: orDefault(tableName, defaultOrdersTableName),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Order, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customerIDIndex),
		KeyConditionExpression: aws.String("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})

	orders := make([]entities.Order, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
		}
	}
	return orders, nil
}

// Update applies the non-nil fields of patch and bumps the record version.
// A missing record yields a zero-value Order; a version mismatch yields
// interfaces.ErrConcurrentUpdate.
func (r *OrderDynamoRepository) Update(ctx context.Context, id string, patch entities.OrderPatch) (entities.Order, error) {
	updateExpr, values, names, err := orderPatchExpression(patch, formatTime(r.now()))
	if err != nil {
		return entities.Order{}, err
	}
	condition := orderCondition(patch, values)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:                 aws.String(condition),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) > 0 {
				return entities.Order{}, interfaces.ErrConcurrentUpdate
			}
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// orderCondition requires the record to exist and, for guarded patches, to
// still carry the expected version.
func orderCondition(patch entities.OrderPatch, values map[string]types.AttributeValue) string {
	if patch.IfVersion == nil {
		return "attribute_exists(#id)"
	}
	values[":expected_version"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*patch.IfVersion, 10)}
	if *patch.IfVersion == 0 {
		return "attribute_exists(#id) AND (attribute_not_exists(#version) OR #version = :expected_version)"
	}
	return "attribute_exists(#id) AND #version = :expected_version"
}

// orderPatchExpression builds the update expression for patch. updated_at is
// always written and version is always incremented.
func orderPatchExpression(patch entities.OrderPatch, now string) (string, map[string]types.AttributeValue, map[string]string, error) {
	sets := []string{"#updated_at = :updated_at"}
	values := map[string]types.AttributeValue{
		":updated_at":  &types.AttributeValueMemberS{Value: now},
		":version_inc": &types.AttributeValueMemberN{Value: "1"},
	}
	names := map[string]string{"#updated_at": "updated_at", "#version": "version"}

	setS := func(attr, v string) {
		sets = append(sets, "#"+attr+" = :"+attr)
		values[":"+attr] = &types.AttributeValueMemberS{Value: v}
		names["#"+attr] = attr
	}

	if patch.Status != nil {
		setS("status", string(*patch.Status))
	}
	if patch.PaymentAmountConfirmed != nil {
		setS("payment_amount_confirmed", patch.PaymentAmountConfirmed.String())
	}
	if patch.PaymentConfirmedAt != nil {
		setS("payment_confirmed_at", formatTime(*patch.PaymentConfirmedAt))
	}
	if patch.DeliveryAddressID != nil {
		setS("delivery_address_id", *patch.DeliveryAddressID)
	}
	if patch.Carrier != nil {
		setS("carrier", *patch.Carrier)
	}
	if patch.TrackingNumber != nil {
		setS("tracking_number", *patch.TrackingNumber)
	}
	if patch.PaymentProof != nil {
		av, err := attributevalue.Marshal(toPaymentProofItem(*patch.PaymentProof))
		if err != nil {
			return "", nil, nil, err
		}
		sets = append(sets, "#payment_proof = :payment_proof")
		values[":payment_proof"] = av
		names["#payment_proof"] = "payment_proof"
	}
	if patch.AppendIssue != nil {
		av, err := attributevalue.Marshal([]deliveryIssueItem{toDeliveryIssueItem(*patch.AppendIssue)})
		if err != nil {
			return "", nil, nil, err
		}
		sets = append(sets, "#issues = list_append(if_not_exists(#issues, :empty_list), :issue)")
		values[":issue"] = av
		values[":empty_list"] = &types.AttributeValueMemberL{Value: []types.AttributeValue{}}
		names["#issues"] = "issues"
	}

	return "SET " + strings.Join(sets, ", ") + " ADD #version :version_inc", values, names, nil
}

func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		ID:                     it.ID,
		OrderNumber:            it.OrderNumber,
		CustomerID:             it.CustomerID,
		QuoteID:                it.QuoteID,
		Status:                 lifecycle.ParseOrderStatus(it.Status),
		Currency:               it.Currency,
		TotalAmount:            parseDecimalPtr(it.TotalAmount),
		PaymentAmountConfirmed: parseDecimalPtr(it.PaymentAmountConfirmed),
		PaymentConfirmedAt:     parseTimePtr(it.PaymentConfirmedAt),
		DeliveryAddressID:      it.DeliveryAddressID,
		Carrier:                it.Carrier,
		TrackingNumber:         it.TrackingNumber,
		LineItems:              make([]entities.LineItem, 0, len(it.LineItems)),
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
		Version:                it.Version,
	}
	if it.PaymentProof != nil {
		o.PaymentProof = &entities.PaymentProof{
			Bucket:     it.PaymentProof.Bucket,
			Path:       it.PaymentProof.Path,
			Status:     entities.ProofStatus(it.PaymentProof.Status),
			UploadedAt: parseTime(it.PaymentProof.UploadedAt),
			ExpiresAt:  parseTime(it.PaymentProof.ExpiresAt),
		}
	}
	for _, li := range it.LineItems {
		price, _ := decimal.NewFromString(li.UnitPrice)
		o.LineItems = append(o.LineItems, entities.LineItem{
			ProductID:   li.ProductID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   price,
		})
	}
	for _, is := range it.Issues {
		o.Issues = append(o.Issues, entities.DeliveryIssue{
			ID:          is.ID,
			Category:    is.Category,
			Description: is.Description,
			ReportedAt:  parseTime(is.ReportedAt),
		})
	}
	return o
}

func toPaymentProofItem(p entities.PaymentProof) paymentProofItem {
	return paymentProofItem{
		Bucket:     p.Bucket,
		Path:       p.Path,
		Status:     string(p.Status),
		UploadedAt: formatTime(p.UploadedAt),
		ExpiresAt:  formatTime(p.ExpiresAt),
	}
}

func toDeliveryIssueItem(i entities.DeliveryIssue) deliveryIssueItem {
	return deliveryIssueItem{
		ID:          i.ID,
		Category:    i.Category,
		Description: i.Description,
		ReportedAt:  formatTime(i.ReportedAt),
	}
}
