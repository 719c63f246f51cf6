package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

const providerStatusApproved = "approved"

// IOrderPaymentUseCase charges the open balance of an order online.
//
// An approved provider payment is recorded on the order exactly like a
// payment verified by staff.

type IOrderPaymentUseCase interface {
	PayBalance(ctx context.Context, orderID string, mpPayload json.RawMessage) (OnlinePayment, error)
}

// OnlinePayment is the outcome of a provider charge.
type OnlinePayment struct {
	ProviderPaymentID string
	ProviderStatus    string
	Amount            decimal.Decimal
	Order             entities.Order
	ProviderResponse  json.RawMessage
}

type OrderPaymentUseCase struct {
	repo     interfaces.IOrderRepository
	gateway  interfaces.IPaymentGateway
	notifier interfaces.INotifier
	feed     interfaces.IChangeFeed
	log      zerolog.Logger
	now      func() time.Time
}

var _ IOrderPaymentUseCase = (*OrderPaymentUseCase)(nil)

func NewOrderPaymentUseCase(
	repo interfaces.IOrderRepository,
	gateway interfaces.IPaymentGateway,
	notifier interfaces.INotifier,
	feed interfaces.IChangeFeed,
	log zerolog.Logger,
) *OrderPaymentUseCase {
	return &OrderPaymentUseCase{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		feed:     feed,
		log:      log.With().Str("component", "order_payment_usecase").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderPaymentUseCase) PayBalance(ctx context.Context, orderID string, mpPayload json.RawMessage) (OnlinePayment, error) {
	orderID = strings.TrimSpace(orderID)
	log := u.log.With().Str("order_id", orderID).Logger()
	log.Debug().Int("payload_len", len(mpPayload)).Msg("pay balance start")

	if orderID == "" {
		return OnlinePayment{}, ErrInvalidOrderID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		return OnlinePayment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		log.Warn().Msg("gateway not configured")
		return OnlinePayment{}, ErrPaymentGatewayNotConfigured
	}

	o, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Msg("failed loading order")
		return OnlinePayment{}, err
	}
	if o.ID == "" {
		return OnlinePayment{}, ErrOrderNotFound
	}
	facts := o.Facts(u.now())
	if !lifecycle.CanUploadPaymentProof(facts) {
		log.Info().Str("status", string(o.Status)).Msg("online payment refused")
		return OnlinePayment{}, fmt.Errorf("%w: pay balance", ErrActionNotPermitted)
	}
	balance, ok := facts.Payment.BalanceRemaining()
	if !ok || !balance.IsPositive() {
		return OnlinePayment{}, fmt.Errorf("%w: pay balance", ErrActionNotPermitted)
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return OnlinePayment{}, ErrInvalidMPPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Info().Msg("missing payment_method_id")
		return OnlinePayment{}, ErrInvalidMPPayload
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = o.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Order %s balance", orderLabel(o))
	}
	// The source of truth for the amount is the order in DB.
	reqMap["transaction_amount"] = balance.InexactFloat64()
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return OnlinePayment{}, err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Error().Err(err).Msg("payment gateway failed")
		return OnlinePayment{}, classifyGatewayError(err)
	}
	log.Info().Str("provider_payment_id", providerID).Str("provider_status", providerStatus).Msg("payment gateway success")

	result := OnlinePayment{
		ProviderPaymentID: providerID,
		ProviderStatus:    providerStatus,
		Amount:            balance,
		Order:             o,
		ProviderResponse:  providerResp,
	}
	if providerStatus != providerStatusApproved {
		return result, nil
	}

	updated, err := u.recordCharge(ctx, o, balance)
	if err != nil {
		log.Error().Err(err).Str("provider_payment_id", providerID).Msg("recording approved payment failed")
		return OnlinePayment{}, err
	}
	result.Order = updated

	if u.notifier != nil {
		u.notifier.Notify(ctx, NotificationPaymentVerified, map[string]any{
			"order_id":            updated.ID,
			"order_number":        updated.OrderNumber,
			"customer_id":         updated.CustomerID,
			"status":              string(updated.Status),
			"amount":              lifecycle.FormatAmount(updated.Currency, balance),
			"provider_payment_id": providerID,
		})
	}
	publish(ctx, u.feed, u.log, interfaces.Change{
		Table: interfaces.TableOrders, RecordID: updated.ID, CustomerID: updated.CustomerID, Kind: "payment_verified", At: u.now(),
	})
	return result, nil
}

// recordCharge adds a captured gateway charge to the order. The money has
// already moved, so a lost version race rereads the order and adds the amount
// again instead of failing the gate.
func (u *OrderPaymentUseCase) recordCharge(ctx context.Context, o entities.Order, amount decimal.Decimal) (entities.Order, error) {
	current := o
	var updated entities.Order
	err := retryOnConflict(maxWriteAttempts, func() error {
		rec, err := u.repo.Update(ctx, current.ID, paymentPatch(current, amount, u.now()).Guarded(current))
		if errors.Is(err, ErrConcurrentUpdate) {
			fresh, gerr := u.repo.GetByID(ctx, current.ID)
			if gerr != nil {
				return gerr
			}
			if fresh.ID == "" {
				return ErrOrderNotFound
			}
			current = fresh
			return err
		}
		if err != nil {
			return err
		}
		if rec.ID == "" {
			return ErrOrderNotFound
		}
		updated = rec
		return nil
	})
	return updated, err
}

func orderLabel(o entities.Order) string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}
