package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrderID       = errors.New("invalid order id")
	ErrInvalidCustomerID    = errors.New("invalid customer id")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidStatusFilter  = errors.New("invalid status filter")
	ErrEmptyPatch           = errors.New("nothing to update")
	ErrActionNotPermitted   = errors.New("action not permitted")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidFile          = errors.New("invalid file")
	ErrInvalidAddressID     = errors.New("invalid delivery address id")
	ErrInvalidIssue         = errors.New("invalid issue")
	ErrPaymentProofNotFound = errors.New("payment proof not found")

	// ErrConcurrentUpdate means the record changed between the gate check and the write.
	ErrConcurrentUpdate = interfaces.ErrConcurrentUpdate
)

// maxWriteAttempts bounds the reread-and-retry loop of payment writes.
const maxWriteAttempts = 3

// Notification names sent through INotifier.
const (
	NotificationOrderStatusChanged    = "order-status-changed"
	NotificationPaymentProofUploaded  = "payment-proof-uploaded"
	NotificationPaymentVerified       = "payment-verified"
	NotificationDeliveryIssueReported = "delivery-issue-reported"
	NotificationReorderRequested      = "reorder-requested"
)

var proofContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
}

// IOrderUseCase exposes the customer and staff order operations of the portal.
//
// Customer actions are gated by lifecycle.EvaluateOrder on the freshly fetched
// record; a refused action returns ErrActionNotPermitted.

type IOrderUseCase interface {
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	ListCustomerOrders(ctx context.Context, customerID, status string) ([]entities.Order, error)
	UpdateOrder(ctx context.Context, id string, patch entities.OrderPatch) (entities.Order, error)
	UploadPaymentProof(ctx context.Context, id string, upload ProofUpload) (entities.Order, error)
	PaymentProofURL(ctx context.Context, id string) (string, error)
	SetDeliveryAddress(ctx context.Context, id, addressID string) (entities.Order, error)
	ReportIssue(ctx context.Context, id, category, description string) (entities.Order, error)
	Tracking(ctx context.Context, id string) (Tracking, error)
	VerifyPayment(ctx context.Context, id string, amount decimal.Decimal) (entities.Order, error)
	Reorder(ctx context.Context, id string) (entities.Quote, error)
}

// OrderConfig carries the storage settings of the order use case.
type OrderConfig struct {
	ProofBucket  string
	ProofExpiry  time.Duration
	SignedURLTTL time.Duration
	MaxProofSize int
}

// ProofUpload is a payment proof file received from the customer.
// ContentType is the client's claim and is only logged.
type ProofUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Tracking is the answer to a tracking request. Carrier data is only set
// when tracking is allowed.
type Tracking struct {
	lifecycle.TrackingDecision
	Carrier        string
	TrackingNumber string
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	quoteRepo interfaces.IQuoteRepository
	files     interfaces.IFileStore
	notifier  interfaces.INotifier
	feed      interfaces.IChangeFeed
	cfg       OrderConfig
	log       zerolog.Logger
	now       func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	quoteRepo interfaces.IQuoteRepository,
	files interfaces.IFileStore,
	notifier interfaces.INotifier,
	feed interfaces.IChangeFeed,
	cfg OrderConfig,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		quoteRepo: quoteRepo,
		files:     files,
		notifier:  notifier,
		feed:      feed,
		cfg:       cfg,
		log:       log.With().Str("component", "order_usecase").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ListCustomerOrders returns the customer's orders, newest first. status is
// "all", "" or a known order status.
func (u *OrderUseCase) ListCustomerOrders(ctx context.Context, customerID, status string) ([]entities.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = lifecycle.FilterAll
	}
	if !lifecycle.Orders().ValidFilter(status) {
		return nil, ErrInvalidStatusFilter
	}

	all, err := u.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Order, 0, len(all))
	for _, o := range all {
		if status == lifecycle.FilterAll || string(o.Status) == status {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateOrder applies a staff patch. Status values must be known.
func (u *OrderUseCase) UpdateOrder(ctx context.Context, id string, patch entities.OrderPatch) (entities.Order, error) {
	if patch.Empty() {
		return entities.Order{}, ErrEmptyPatch
	}
	if patch.Status != nil && !patch.Status.Known() {
		return entities.Order{}, ErrInvalidStatus
	}
	if patch.PaymentAmountConfirmed != nil && patch.PaymentAmountConfirmed.IsNegative() {
		return entities.Order{}, ErrInvalidAmount
	}

	current, err := u.GetOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	return u.apply(ctx, current, patch, "updated")
}

func (u *OrderUseCase) UploadPaymentProof(ctx context.Context, id string, upload ProofUpload) (entities.Order, error) {
	if len(upload.Data) == 0 || (u.cfg.MaxProofSize > 0 && len(upload.Data) > u.cfg.MaxProofSize) {
		return entities.Order{}, ErrInvalidFile
	}
	contentType, ext, ok := detectProofType(upload.Data)
	if !ok {
		u.log.Info().Str("order_id", id).Str("declared_type", upload.ContentType).Msg("payment proof type not accepted")
		return entities.Order{}, ErrInvalidFile
	}

	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	now := u.now()
	if !lifecycle.CanUploadPaymentProof(o.Facts(now)) {
		u.log.Info().Str("order_id", o.ID).Str("status", string(o.Status)).Msg("payment proof upload refused")
		return entities.Order{}, fmt.Errorf("%w: upload payment proof", ErrActionNotPermitted)
	}

	objectPath := path.Join(o.CustomerID, o.ID, uuid.NewString()+ext)
	stored, err := u.files.Upload(ctx, u.cfg.ProofBucket, objectPath, upload.Data, contentType)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", o.ID).Msg("payment proof upload failed")
		return entities.Order{}, err
	}

	patch := entities.OrderPatch{
		PaymentProof: &entities.PaymentProof{
			Bucket:     stored.Bucket,
			Path:       stored.Path,
			Status:     entities.ProofStatusPending,
			UploadedAt: now,
			ExpiresAt:  now.Add(u.cfg.ProofExpiry),
		},
	}
	if o.Status == lifecycle.OrderStatusOrderConfirmed {
		next := lifecycle.OrderStatusPendingPayment
		patch.Status = &next
	}

	updated, err := u.apply(ctx, o, patch.Guarded(o), "payment_proof")
	if err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			u.log.Warn().Str("order_id", o.ID).Str("path", stored.Path).Msg("payment proof stored but order changed concurrently")
		}
		return entities.Order{}, err
	}
	u.notify(ctx, NotificationPaymentProofUploaded, updated, map[string]any{
		"file_name": upload.FileName,
		"path":      stored.Path,
	})
	return updated, nil
}

func (u *OrderUseCase) PaymentProofURL(ctx context.Context, id string) (string, error) {
	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return "", err
	}
	if o.PaymentProof == nil || o.PaymentProof.Path == "" {
		return "", ErrPaymentProofNotFound
	}
	bucket := o.PaymentProof.Bucket
	if bucket == "" {
		bucket = u.cfg.ProofBucket
	}
	return u.files.SignedURL(ctx, bucket, o.PaymentProof.Path, u.cfg.SignedURLTTL)
}

func (u *OrderUseCase) SetDeliveryAddress(ctx context.Context, id, addressID string) (entities.Order, error) {
	addressID = strings.TrimSpace(addressID)
	if addressID == "" {
		return entities.Order{}, ErrInvalidAddressID
	}

	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !lifecycle.CanAddDeliveryAddress(o.Facts(u.now())) {
		return entities.Order{}, fmt.Errorf("%w: add delivery address", ErrActionNotPermitted)
	}
	return u.apply(ctx, o, entities.OrderPatch{DeliveryAddressID: &addressID}.Guarded(o), "delivery_address")
}

func (u *OrderUseCase) ReportIssue(ctx context.Context, id, category, description string) (entities.Order, error) {
	category = strings.TrimSpace(category)
	description = strings.TrimSpace(description)
	if category == "" || description == "" {
		return entities.Order{}, ErrInvalidIssue
	}

	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	now := u.now()
	if !lifecycle.CanReportIssue(o.Facts(now)) {
		return entities.Order{}, fmt.Errorf("%w: report issue", ErrActionNotPermitted)
	}

	issue := entities.DeliveryIssue{
		ID:          uuid.NewString(),
		Category:    category,
		Description: description,
		ReportedAt:  now,
	}
	updated, err := u.apply(ctx, o, entities.OrderPatch{AppendIssue: &issue}, "issue")
	if err != nil {
		return entities.Order{}, err
	}
	u.notify(ctx, NotificationDeliveryIssueReported, updated, map[string]any{
		"issue_id": issue.ID,
		"category": issue.Category,
	})
	return updated, nil
}

func (u *OrderUseCase) Tracking(ctx context.Context, id string) (Tracking, error) {
	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return Tracking{}, err
	}

	t := Tracking{TrackingDecision: lifecycle.TrackShipment(o.Facts(u.now()))}
	if t.Allowed {
		t.Carrier = o.Carrier
		t.TrackingNumber = o.TrackingNumber
	}
	return t, nil
}

// VerifyPayment records a payment confirmed by staff. The order advances to
// payment_received once the confirmed amount covers the total. A write that
// loses a race with another payment is retried on the fresh record.
func (u *OrderUseCase) VerifyPayment(ctx context.Context, id string, amount decimal.Decimal) (entities.Order, error) {
	if !amount.IsPositive() {
		return entities.Order{}, ErrInvalidAmount
	}

	var updated entities.Order
	err := retryOnConflict(maxWriteAttempts, func() error {
		o, err := u.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		patch, err := verifiedPaymentPatch(o, amount, u.now())
		if err != nil {
			return err
		}
		updated, err = u.apply(ctx, o, patch.Guarded(o), "payment_verified")
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}
	payload := map[string]any{"amount": lifecycle.FormatAmount(updated.Currency, amount)}
	if balance, ok := updated.Facts(u.now()).Payment.BalanceRemaining(); ok {
		payload["balance_remaining"] = lifecycle.FormatAmount(updated.Currency, balance)
	}
	u.notify(ctx, NotificationPaymentVerified, updated, payload)
	return updated, nil
}

// Reorder opens a new pending quote request with the order's line items.
func (u *OrderUseCase) Reorder(ctx context.Context, id string) (entities.Quote, error) {
	o, err := u.GetOrder(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if !lifecycle.CanReorder(o.Facts(u.now())) {
		return entities.Quote{}, fmt.Errorf("%w: reorder", ErrActionNotPermitted)
	}

	now := u.now()
	qID := uuid.NewString()
	q := entities.Quote{
		ID:            qID,
		CustomerID:    o.CustomerID,
		Reference:     "RQ-" + strings.ToUpper(qID[:8]),
		Status:        lifecycle.QuoteStatusPending,
		Currency:      o.Currency,
		Lines:         make([]entities.QuoteLine, 0, len(o.LineItems)),
		SourceOrderID: o.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, li := range o.LineItems {
		q.Lines = append(q.Lines, entities.QuoteLine{ProductID: li.ProductID, Description: li.Description, Quantity: li.Quantity})
	}

	created, err := u.quoteRepo.Create(ctx, q)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", o.ID).Msg("reorder quote create failed")
		return entities.Quote{}, err
	}
	u.notify(ctx, NotificationReorderRequested, o, map[string]any{"quote_id": created.ID})
	publish(ctx, u.feed, u.log, interfaces.Change{
		Table: interfaces.TableQuotes, RecordID: created.ID, CustomerID: created.CustomerID, Kind: "created", At: now,
	})
	return created, nil
}

// detectProofType sniffs the file content. The declared multipart type is
// not trusted.
func detectProofType(data []byte) (contentType, ext string, ok bool) {
	detected := mimetype.Detect(data)
	for ct, e := range proofContentTypes {
		if detected.Is(ct) {
			return ct, e, true
		}
	}
	return "", "", false
}

// apply writes the patch, notifies status changes and publishes the change.
func (u *OrderUseCase) apply(ctx context.Context, current entities.Order, patch entities.OrderPatch, kind string) (entities.Order, error) {
	updated, err := u.repo.Update(ctx, current.ID, patch)
	if errors.Is(err, ErrConcurrentUpdate) {
		u.log.Info().Str("order_id", current.ID).Str("kind", kind).Int64("version", current.Version).Msg("order changed concurrently")
		return entities.Order{}, err
	}
	if err != nil {
		u.log.Error().Err(err).Str("order_id", current.ID).Str("kind", kind).Msg("order update failed")
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	u.log.Info().Str("order_id", updated.ID).Str("kind", kind).Str("status", string(updated.Status)).Msg("order updated")

	if patch.Status != nil && *patch.Status != current.Status {
		u.notify(ctx, NotificationOrderStatusChanged, updated, map[string]any{
			"previous_status": string(current.Status),
		})
	}
	publish(ctx, u.feed, u.log, interfaces.Change{
		Table: interfaces.TableOrders, RecordID: updated.ID, CustomerID: updated.CustomerID, Kind: kind, At: u.now(),
	})
	return updated, nil
}

func (u *OrderUseCase) notify(ctx context.Context, name string, o entities.Order, extra map[string]any) {
	if u.notifier == nil {
		return
	}
	payload := map[string]any{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"customer_id":  o.CustomerID,
		"status":       string(o.Status),
		"status_label": o.Status.Descriptor().CustomerLabel,
	}
	for k, v := range extra {
		payload[k] = v
	}
	u.notifier.Notify(ctx, name, payload)
}

// verifiedPaymentPatch adds amount to the confirmed payment of an order that
// is waiting on payment.
func verifiedPaymentPatch(o entities.Order, amount decimal.Decimal, now time.Time) (entities.OrderPatch, error) {
	if !awaitingPayment(o) {
		return entities.OrderPatch{}, fmt.Errorf("%w: verify payment", ErrActionNotPermitted)
	}
	return paymentPatch(o, amount, now), nil
}

// paymentPatch adds amount to the confirmed payment of o. The status only
// moves while the order is still waiting on payment.
func paymentPatch(o entities.Order, amount decimal.Decimal, now time.Time) entities.OrderPatch {
	confirmed := amount
	if o.PaymentAmountConfirmed != nil {
		confirmed = o.PaymentAmountConfirmed.Add(amount)
	}
	patch := entities.OrderPatch{
		PaymentAmountConfirmed: &confirmed,
		PaymentConfirmedAt:     &now,
	}
	if o.PaymentProof != nil && o.PaymentProof.Status == entities.ProofStatusPending {
		proof := *o.PaymentProof
		proof.Status = entities.ProofStatusApproved
		patch.PaymentProof = &proof
	}

	if !awaitingPayment(o) {
		return patch
	}
	facts := lifecycle.PaymentFacts{TotalAmount: o.TotalAmount, ConfirmedAmount: &confirmed, ConfirmedAt: &now}
	next := lifecycle.OrderStatusPendingPayment
	if facts.FullyPaid() {
		next = lifecycle.OrderStatusPaymentReceived
	}
	patch.Status = &next
	return patch
}

func awaitingPayment(o entities.Order) bool {
	return o.Status.In(lifecycle.OrderStatusOrderConfirmed, lifecycle.OrderStatusPendingPayment) && o.TotalAmount != nil
}

// retryOnConflict reruns a read-check-write step while it loses version races.
func retryOnConflict(attempts int, step func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = step(); !errors.Is(err, ErrConcurrentUpdate) {
			return err
		}
	}
	return err
}

// publish is non-fatal: subscribers only miss a refetch signal.
func publish(ctx context.Context, feed interfaces.IChangeFeed, log zerolog.Logger, change interfaces.Change) {
	if feed == nil {
		return
	}
	if err := feed.Publish(ctx, change); err != nil {
		log.Warn().Err(err).Str("table", change.Table).Str("record_id", change.RecordID).Msg("change publish failed (non-fatal)")
	}
}
