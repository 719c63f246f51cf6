package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

var (
	ErrQuoteNotFound         = errors.New("quote not found")
	ErrInvalidQuoteID        = errors.New("invalid quote id")
	ErrQuoteDocumentNotFound = errors.New("quote document not found")
)

const (
	NotificationQuoteAccepted = "quote-accepted"
	NotificationQuoteDeclined = "quote-declined"
)

// IQuoteUseCase exposes the customer side of the quote lifecycle.
//
//   - Accept  => quoted -> approved
//   - Decline => quoted -> declined

type IQuoteUseCase interface {
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
	ListCustomerQuotes(ctx context.Context, customerID, status string) ([]entities.Quote, error)
	Accept(ctx context.Context, id string) (entities.Quote, error)
	Decline(ctx context.Context, id, reason string) (entities.Quote, error)
	DocumentURL(ctx context.Context, id string) (string, error)
}

type QuoteUseCase struct {
	repo         interfaces.IQuoteRepository
	files        interfaces.IFileStore
	notifier     interfaces.INotifier
	feed         interfaces.IChangeFeed
	signedURLTTL time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	files interfaces.IFileStore,
	notifier interfaces.INotifier,
	feed interfaces.IChangeFeed,
	signedURLTTL time.Duration,
	log zerolog.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{
		repo:         repo,
		files:        files,
		notifier:     notifier,
		feed:         feed,
		signedURLTTL: signedURLTTL,
		log:          log.With().Str("component", "quote_usecase").Logger(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) ListCustomerQuotes(ctx context.Context, customerID, status string) ([]entities.Quote, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = lifecycle.FilterAll
	}
	if !lifecycle.Quotes().ValidFilter(status) {
		return nil, ErrInvalidStatusFilter
	}

	all, err := u.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(all))
	for _, q := range all {
		if status == lifecycle.FilterAll || string(q.Status) == status {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *QuoteUseCase) Accept(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.GetQuote(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if !lifecycle.CanAcceptQuote(q.Facts(u.now())) {
		return entities.Quote{}, fmt.Errorf("%w: accept quote", ErrActionNotPermitted)
	}
	return u.transition(ctx, q, lifecycle.QuoteStatusApproved, "", NotificationQuoteAccepted)
}

func (u *QuoteUseCase) Decline(ctx context.Context, id, reason string) (entities.Quote, error) {
	q, err := u.GetQuote(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if !lifecycle.CanDeclineQuote(q.Facts(u.now())) {
		return entities.Quote{}, fmt.Errorf("%w: decline quote", ErrActionNotPermitted)
	}
	return u.transition(ctx, q, lifecycle.QuoteStatusDeclined, strings.TrimSpace(reason), NotificationQuoteDeclined)
}

func (u *QuoteUseCase) DocumentURL(ctx context.Context, id string) (string, error) {
	q, err := u.GetQuote(ctx, id)
	if err != nil {
		return "", err
	}
	if q.Document == nil || q.Document.Path == "" {
		return "", ErrQuoteDocumentNotFound
	}
	return u.files.SignedURL(ctx, q.Document.Bucket, q.Document.Path, u.signedURLTTL)
}

func (u *QuoteUseCase) transition(ctx context.Context, q entities.Quote, status lifecycle.QuoteStatus, reason, notification string) (entities.Quote, error) {
	updated, err := u.repo.UpdateStatus(ctx, q.ID, q.Status, status, reason)
	if errors.Is(err, ErrConcurrentUpdate) {
		u.log.Info().Str("quote_id", q.ID).Str("status", string(status)).Msg("quote decided concurrently")
		return entities.Quote{}, err
	}
	if err != nil {
		u.log.Error().Err(err).Str("quote_id", q.ID).Str("status", string(status)).Msg("quote status update failed")
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	u.log.Info().Str("quote_id", updated.ID).Str("status", string(updated.Status)).Msg("quote status updated")

	if u.notifier != nil {
		payload := map[string]any{
			"quote_id":        updated.ID,
			"reference":       updated.Reference,
			"customer_id":     updated.CustomerID,
			"previous_status": string(q.Status),
			"status":          string(updated.Status),
		}
		if reason != "" {
			payload["reason"] = reason
		}
		u.notifier.Notify(ctx, notification, payload)
	}
	publish(ctx, u.feed, u.log, interfaces.Change{
		Table: interfaces.TableQuotes, RecordID: updated.ID, CustomerID: updated.CustomerID, Kind: string(status), At: u.now(),
	})
	return updated, nil
}
