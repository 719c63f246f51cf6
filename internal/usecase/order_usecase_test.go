package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase/interfaces"
	mock_interfaces "trade_portal/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

type orderMocks struct {
	repo      *mock_interfaces.MockIOrderRepository
	quoteRepo *mock_interfaces.MockIQuoteRepository
	files     *mock_interfaces.MockIFileStore
	notifier  *mock_interfaces.MockINotifier
	feed      *mock_interfaces.MockIChangeFeed
}

func newOrderUseCaseForTest(t *testing.T) (*OrderUseCase, orderMocks) {
	ctrl := gomock.NewController(t)
	m := orderMocks{
		repo:      mock_interfaces.NewMockIOrderRepository(ctrl),
		quoteRepo: mock_interfaces.NewMockIQuoteRepository(ctrl),
		files:     mock_interfaces.NewMockIFileStore(ctrl),
		notifier:  mock_interfaces.NewMockINotifier(ctrl),
		feed:      mock_interfaces.NewMockIChangeFeed(ctrl),
	}
	uc := NewOrderUseCase(m.repo, m.quoteRepo, m.files, m.notifier, m.feed, OrderConfig{
		ProofBucket:  "proofs",
		ProofExpiry:  72 * time.Hour,
		SignedURLTTL: 10 * time.Minute,
		MaxProofSize: 1024,
	}, zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func statusPtr(s lifecycle.OrderStatus) *lifecycle.OrderStatus { return &s }

func TestOrderUseCase_GetOrder(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, nil, nil, nil, OrderConfig{}, zerolog.Nop())
		_, err := uc.GetOrder(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, errors.New("db"))
		_, err := uc.GetOrder(context.Background(), "ord-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, nil)
		_, err := uc.GetOrder(context.Background(), " ord-1 ")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestOrderUseCase_ListCustomerOrders(t *testing.T) {
	t.Run("invalid filter", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.ListCustomerOrders(context.Background(), "cust-1", "quoted")
		if !errors.Is(err, ErrInvalidStatusFilter) {
			t.Fatalf("expected ErrInvalidStatusFilter, got %v", err)
		}
	})

	t.Run("invalid customer", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.ListCustomerOrders(context.Background(), "", "all")
		if !errors.Is(err, ErrInvalidCustomerID) {
			t.Fatalf("expected ErrInvalidCustomerID, got %v", err)
		}
	})

	t.Run("filters and sorts newest first", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().ListByCustomerID(gomock.Any(), "cust-1").Return([]entities.Order{
			{ID: "a", Status: lifecycle.OrderStatusShipped, CreatedAt: fixedNow.Add(-2 * time.Hour)},
			{ID: "b", Status: lifecycle.OrderStatusProcessing, CreatedAt: fixedNow.Add(-time.Hour)},
			{ID: "c", Status: lifecycle.OrderStatusShipped, CreatedAt: fixedNow},
		}, nil).Times(2)

		got, err := uc.ListCustomerOrders(context.Background(), "cust-1", "shipped")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
			t.Fatalf("unexpected orders: %+v", got)
		}

		got, err = uc.ListCustomerOrders(context.Background(), "cust-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 || got[0].ID != "c" {
			t.Fatalf("unexpected orders: %+v", got)
		}
	})
}

func TestOrderUseCase_UpdateOrder(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.UpdateOrder(context.Background(), "ord-1", entities.OrderPatch{})
		if !errors.Is(err, ErrEmptyPatch) {
			t.Fatalf("expected ErrEmptyPatch, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.UpdateOrder(context.Background(), "ord-1", entities.OrderPatch{Status: statusPtr("teleported")})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("status change notifies and publishes", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		current := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: lifecycle.OrderStatusReadyToShip}
		updated := current
		updated.Status = lifecycle.OrderStatusShipped

		patch := entities.OrderPatch{Status: statusPtr(lifecycle.OrderStatusShipped)}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", patch).Return(updated, nil)
		m.notifier.EXPECT().Notify(gomock.Any(), NotificationOrderStatusChanged, gomock.Any()).Do(
			func(_ context.Context, _ string, payload map[string]any) {
				if payload["previous_status"] != "ready_to_ship" || payload["status"] != "shipped" {
					t.Fatalf("unexpected payload: %+v", payload)
				}
			},
		)
		m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c interfaces.Change) error {
				if c.Table != interfaces.TableOrders || c.RecordID != "ord-1" || c.CustomerID != "cust-1" {
					t.Fatalf("unexpected change: %+v", c)
				}
				return nil
			},
		)

		res, err := uc.UpdateOrder(context.Background(), "ord-1", patch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != lifecycle.OrderStatusShipped {
			t.Fatalf("unexpected status: %s", res.Status)
		}
	})

	t.Run("publish failure is not fatal", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		addr := "addr-9"
		current := entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusProcessing}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).Return(current, nil)
		m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))

		if _, err := uc.UpdateOrder(context.Background(), "ord-1", entities.OrderPatch{DeliveryAddressID: &addr}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_UploadPaymentProof(t *testing.T) {
	pdf := ProofUpload{FileName: "transfer.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}

	t.Run("invalid content type", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.UploadPaymentProof(context.Background(), "ord-1", ProofUpload{ContentType: "text/html", Data: []byte("x")})
		if !errors.Is(err, ErrInvalidFile) {
			t.Fatalf("expected ErrInvalidFile, got %v", err)
		}
	})

	t.Run("declared type does not match content", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.UploadPaymentProof(context.Background(), "ord-1", ProofUpload{
			FileName: "proof.pdf", ContentType: "application/pdf", Data: []byte("<html><script>alert(1)</script></html>"),
		})
		if !errors.Is(err, ErrInvalidFile) {
			t.Fatalf("expected ErrInvalidFile, got %v", err)
		}
	})

	t.Run("content type is taken from the bytes", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		png := ProofUpload{FileName: "receipt", ContentType: "application/octet-stream", Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{
			ID: "ord-1", CustomerID: "cust-1", Status: lifecycle.OrderStatusOrderConfirmed, TotalAmount: money(1000),
		}, nil)
		m.files.EXPECT().Upload(gomock.Any(), "proofs", gomock.Any(), png.Data, "image/png").DoAndReturn(
			func(_ context.Context, _, path string, _ []byte, _ string) (interfaces.StoredFile, error) {
				if !strings.HasSuffix(path, ".png") {
					t.Fatalf("unexpected path: %s", path)
				}
				return interfaces.StoredFile{}, errors.New("gcs")
			},
		)
		if _, err := uc.UploadPaymentProof(context.Background(), "ord-1", png); err == nil {
			t.Fatalf("expected upload error")
		}
	})

	t.Run("too large", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.UploadPaymentProof(context.Background(), "ord-1", ProofUpload{ContentType: "image/png", Data: make([]byte, 2048)})
		if !errors.Is(err, ErrInvalidFile) {
			t.Fatalf("expected ErrInvalidFile, got %v", err)
		}
	})

	t.Run("fully paid order refuses", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{
			ID: "ord-1", Status: lifecycle.OrderStatusPendingPayment, TotalAmount: money(1000), PaymentAmountConfirmed: money(1000),
		}, nil)
		_, err := uc.UploadPaymentProof(context.Background(), "ord-1", pdf)
		if !errors.Is(err, ErrActionNotPermitted) {
			t.Fatalf("expected ErrActionNotPermitted, got %v", err)
		}
	})

	t.Run("upload error", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{
			ID: "ord-1", CustomerID: "cust-1", Status: lifecycle.OrderStatusOrderConfirmed, TotalAmount: money(1000),
		}, nil)
		m.files.EXPECT().Upload(gomock.Any(), "proofs", gomock.Any(), pdf.Data, "application/pdf").Return(interfaces.StoredFile{}, errors.New("gcs"))
		_, err := uc.UploadPaymentProof(context.Background(), "ord-1", pdf)
		if err == nil || err.Error() != "gcs" {
			t.Fatalf("expected gcs error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		current := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: lifecycle.OrderStatusOrderConfirmed, TotalAmount: money(1000)}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
		m.files.EXPECT().Upload(gomock.Any(), "proofs", gomock.Any(), pdf.Data, "application/pdf").DoAndReturn(
			func(_ context.Context, bucket, path string, _ []byte, _ string) (interfaces.StoredFile, error) {
				if !strings.HasPrefix(path, "cust-1/ord-1/") || !strings.HasSuffix(path, ".pdf") {
					t.Fatalf("unexpected path: %s", path)
				}
				return interfaces.StoredFile{Bucket: bucket, Path: path}, nil
			},
		)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, p entities.OrderPatch) (entities.Order, error) {
				if p.PaymentProof == nil || p.PaymentProof.Status != entities.ProofStatusPending {
					t.Fatalf("expected pending proof: %+v", p.PaymentProof)
				}
				if p.IfVersion == nil || *p.IfVersion != current.Version {
					t.Fatalf("expected write guarded by the read version, got %v", p.IfVersion)
				}
				if !p.PaymentProof.ExpiresAt.Equal(fixedNow.Add(72 * time.Hour)) {
					t.Fatalf("unexpected expiry: %v", p.PaymentProof.ExpiresAt)
				}
				if p.Status == nil || *p.Status != lifecycle.OrderStatusPendingPayment {
					t.Fatalf("expected pending_payment transition")
				}
				out := current
				out.Status = *p.Status
				out.PaymentProof = p.PaymentProof
				return out, nil
			},
		)
		m.notifier.EXPECT().Notify(gomock.Any(), NotificationOrderStatusChanged, gomock.Any())
		m.notifier.EXPECT().Notify(gomock.Any(), NotificationPaymentProofUploaded, gomock.Any())
		m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.UploadPaymentProof(context.Background(), "ord-1", pdf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentProof == nil || res.Status != lifecycle.OrderStatusPendingPayment {
			t.Fatalf("unexpected order: %+v", res)
		}
	})
}

func TestOrderUseCase_PaymentProofURL(t *testing.T) {
	t.Run("no proof", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1"}, nil)
		_, err := uc.PaymentProofURL(context.Background(), "ord-1")
		if !errors.Is(err, ErrPaymentProofNotFound) {
			t.Fatalf("expected ErrPaymentProofNotFound, got %v", err)
		}
	})

	t.Run("signed url", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{
			ID: "ord-1", PaymentProof: &entities.PaymentProof{Path: "cust-1/ord-1/x.pdf"},
		}, nil)
		m.files.EXPECT().SignedURL(gomock.Any(), "proofs", "cust-1/ord-1/x.pdf", 10*time.Minute).Return("https://signed", nil)

		url, err := uc.PaymentProofURL(context.Background(), "ord-1")
		if err != nil || url != "https://signed" {
			t.Fatalf("unexpected result: %q %v", url, err)
		}
	})
}

func TestOrderUseCase_SetDeliveryAddress(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.SetDeliveryAddress(context.Background(), "ord-1", " ")
		if !errors.Is(err, ErrInvalidAddressID) {
			t.Fatalf("expected ErrInvalidAddressID, got %v", err)
		}
	})

	t.Run("too early", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusOrderConfirmed}, nil)
		_, err := uc.SetDeliveryAddress(context.Background(), "ord-1", "addr-1")
		if !errors.Is(err, ErrActionNotPermitted) {
			t.Fatalf("expected ErrActionNotPermitted, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		current := entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusPaymentReceived}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, p entities.OrderPatch) (entities.Order, error) {
				if p.DeliveryAddressID == nil || *p.DeliveryAddressID != "addr-1" || p.Status != nil {
					t.Fatalf("unexpected patch: %+v", p)
				}
				out := current
				out.DeliveryAddressID = *p.DeliveryAddressID
				return out, nil
			},
		)
		m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.SetDeliveryAddress(context.Background(), "ord-1", "addr-1")
		if err != nil || res.DeliveryAddressID != "addr-1" {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}
	})

	t.Run("changed after the gate check", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		current := entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusProcessing, Version: 7}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, p entities.OrderPatch) (entities.Order, error) {
				if p.IfVersion == nil || *p.IfVersion != 7 {
					t.Fatalf("expected write guarded by version 7, got %v", p.IfVersion)
				}
				return entities.Order{}, interfaces.ErrConcurrentUpdate
			},
		)

		_, err := uc.SetDeliveryAddress(context.Background(), "ord-1", "addr-1")
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})
}

func TestOrderUseCase_ReportIssue(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.ReportIssue(context.Background(), "ord-1", "damaged", "")
		if !errors.Is(err, ErrInvalidIssue) {
			t.Fatalf("expected ErrInvalidIssue, got %v", err)
		}
	})

	t.Run("before shipment", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusProcessing}, nil)
		_, err := uc.ReportIssue(context.Background(), "ord-1", "damaged", "box crushed")
		if !errors.Is(err, ErrActionNotPermitted) {
			t.Fatalf("expected ErrActionNotPermitted, got %v", err)
		}
	})

	t.Run("shipped", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		current := entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusShipped}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, p entities.OrderPatch) (entities.Order, error) {
				if p.AppendIssue == nil || p.AppendIssue.ID == "" || p.AppendIssue.Category != "damaged" || !p.AppendIssue.ReportedAt.Equal(fixedNow) {
					t.Fatalf("unexpected issue: %+v", p.AppendIssue)
				}
				out := current
				out.Issues = []entities.DeliveryIssue{*p.AppendIssue}
				return out, nil
			},
		)
		m.notifier.EXPECT().Notify(gomock.Any(), NotificationDeliveryIssueReported, gomock.Any())
		m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.ReportIssue(context.Background(), "ord-1", " damaged ", "box crushed")
		if err != nil || len(res.Issues) != 1 {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}
	})
}

func TestOrderUseCase_Tracking(t *testing.T) {
	uc, m := newOrderUseCaseForTest(t)
	m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{
		ID: "ord-1", Status: lifecycle.OrderStatusShipped, Carrier: "DHL", TrackingNumber: "JD0001",
	}, nil)
	m.repo.EXPECT().GetByID(gomock.Any(), "ord-2").Return(entities.Order{
		ID: "ord-2", Status: lifecycle.OrderStatusProcessing, Carrier: "DHL", TrackingNumber: "JD0002",
	}, nil)

	tr, err := uc.Tracking(context.Background(), "ord-1")
	if err != nil || !tr.Allowed || tr.Carrier != "DHL" || tr.TrackingNumber != "JD0001" {
		t.Fatalf("unexpected tracking: %+v %v", tr, err)
	}

	tr, err = uc.Tracking(context.Background(), "ord-2")
	if err != nil || tr.Allowed || tr.Message == "" || tr.TrackingNumber != "" {
		t.Fatalf("unexpected tracking: %+v %v", tr, err)
	}
}

func TestOrderUseCase_VerifyPayment(t *testing.T) {
	t.Run("invalid amount", func(t *testing.T) {
		uc, _ := newOrderUseCaseForTest(t)
		_, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.Zero)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("wrong status", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusShipped, TotalAmount: money(10)}, nil)
		_, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(10))
		if !errors.Is(err, ErrActionNotPermitted) {
			t.Fatalf("expected ErrActionNotPermitted, got %v", err)
		}
	})

	cases := []struct {
		name       string
		confirmed  *decimal.Decimal
		amount     int64
		wantStatus lifecycle.OrderStatus
		wantTotal  int64
	}{
		{name: "partial", amount: 400, wantStatus: lifecycle.OrderStatusPendingPayment, wantTotal: 400},
		{name: "balance completes", confirmed: money(400), amount: 600, wantStatus: lifecycle.OrderStatusPaymentReceived, wantTotal: 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newOrderUseCaseForTest(t)
			current := entities.Order{
				ID: "ord-1", Currency: "USD", Status: lifecycle.OrderStatusPendingPayment,
				TotalAmount: money(1000), PaymentAmountConfirmed: tc.confirmed,
				PaymentProof: &entities.PaymentProof{Path: "p", Status: entities.ProofStatusPending},
			}
			m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil)
			m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, p entities.OrderPatch) (entities.Order, error) {
					if p.PaymentAmountConfirmed == nil || !p.PaymentAmountConfirmed.Equal(decimal.NewFromInt(tc.wantTotal)) {
						t.Fatalf("unexpected confirmed amount: %v", p.PaymentAmountConfirmed)
					}
					if p.PaymentConfirmedAt == nil || !p.PaymentConfirmedAt.Equal(fixedNow) {
						t.Fatalf("expected confirmation timestamp")
					}
					if p.PaymentProof == nil || p.PaymentProof.Status != entities.ProofStatusApproved {
						t.Fatalf("expected approved proof")
					}
					if p.Status == nil || *p.Status != tc.wantStatus {
						t.Fatalf("unexpected status: %v", p.Status)
					}
					out := current
					out.Status = *p.Status
					out.PaymentAmountConfirmed = p.PaymentAmountConfirmed
					out.PaymentConfirmedAt = p.PaymentConfirmedAt
					return out, nil
				},
			)
			if tc.wantStatus != current.Status {
				m.notifier.EXPECT().Notify(gomock.Any(), NotificationOrderStatusChanged, gomock.Any())
			}
			m.notifier.EXPECT().Notify(gomock.Any(), NotificationPaymentVerified, gomock.Any())
			m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			res, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(tc.amount))
			if err != nil || res.Status != tc.wantStatus {
				t.Fatalf("unexpected result: %+v %v", res, err)
			}
		})
	}
}

func TestOrderUseCase_Reorder(t *testing.T) {
	t.Run("no line items", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusDelivered}, nil)
		_, err := uc.Reorder(context.Background(), "ord-1")
		if !errors.Is(err, ErrActionNotPermitted) {
			t.Fatalf("expected ErrActionNotPermitted, got %v", err)
		}
	})

	t.Run("creates pending quote", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{
			ID: "ord-1", CustomerID: "cust-1", Currency: "USD", Status: lifecycle.OrderStatusCancelled,
			LineItems: []entities.LineItem{{ProductID: "p-1", Description: "Copper wire", Quantity: 5}},
		}, nil)
		m.quoteRepo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || q.Status != lifecycle.QuoteStatusPending || q.SourceOrderID != "ord-1" || q.CustomerID != "cust-1" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if len(q.Lines) != 1 || q.Lines[0].Quantity != 5 || !strings.HasPrefix(q.Reference, "RQ-") {
					t.Fatalf("unexpected quote lines: %+v", q)
				}
				return q, nil
			},
		)
		m.notifier.EXPECT().Notify(gomock.Any(), NotificationReorderRequested, gomock.Any())
		m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c interfaces.Change) error {
				if c.Table != interfaces.TableQuotes {
					t.Fatalf("expected quotes change, got %+v", c)
				}
				return nil
			},
		)

		q, err := uc.Reorder(context.Background(), "ord-1")
		if err != nil || q.ID == "" {
			t.Fatalf("unexpected result: %+v %v", q, err)
		}
	})
}

// versionedOrders is an in-memory order store that enforces IfVersion the
// way the DynamoDB condition does. beforeUpdate runs once, ahead of the
// first write, to interleave a competing request.
type versionedOrders struct {
	order        entities.Order
	beforeUpdate func()
	writes       int
}

func (r *versionedOrders) GetByID(_ context.Context, id string) (entities.Order, error) {
	if id != r.order.ID {
		return entities.Order{}, nil
	}
	return r.order, nil
}

func (r *versionedOrders) ListByCustomerID(context.Context, string) ([]entities.Order, error) {
	return []entities.Order{r.order}, nil
}

func (r *versionedOrders) Update(_ context.Context, id string, p entities.OrderPatch) (entities.Order, error) {
	if hook := r.beforeUpdate; hook != nil {
		r.beforeUpdate = nil
		hook()
	}
	if id != r.order.ID {
		return entities.Order{}, nil
	}
	if p.IfVersion != nil && *p.IfVersion != r.order.Version {
		return entities.Order{}, interfaces.ErrConcurrentUpdate
	}
	if p.Status != nil {
		r.order.Status = *p.Status
	}
	if p.PaymentAmountConfirmed != nil {
		r.order.PaymentAmountConfirmed = p.PaymentAmountConfirmed
	}
	if p.PaymentConfirmedAt != nil {
		r.order.PaymentConfirmedAt = p.PaymentConfirmedAt
	}
	if p.PaymentProof != nil {
		r.order.PaymentProof = p.PaymentProof
	}
	r.order.Version++
	r.writes++
	return r.order, nil
}

func TestOrderUseCase_VerifyPayment_InterleavedWrites(t *testing.T) {
	t.Run("both amounts are kept", func(t *testing.T) {
		repo := &versionedOrders{order: entities.Order{
			ID: "ord-1", Currency: "USD", Status: lifecycle.OrderStatusPendingPayment, TotalAmount: money(1000), Version: 3,
		}}
		uc := NewOrderUseCase(repo, nil, nil, nil, nil, OrderConfig{}, zerolog.Nop())
		uc.now = func() time.Time { return fixedNow }

		repo.beforeUpdate = func() {
			if _, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(400)); err != nil {
				t.Fatalf("competing verification failed: %v", err)
			}
		}
		res, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(400))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentAmountConfirmed == nil || !res.PaymentAmountConfirmed.Equal(decimal.NewFromInt(800)) {
			t.Fatalf("expected 800 confirmed, got %v", res.PaymentAmountConfirmed)
		}
		if res.Status != lifecycle.OrderStatusPendingPayment || repo.writes != 2 || res.Version != 5 {
			t.Fatalf("unexpected order: %+v (writes=%d)", res, repo.writes)
		}
	})

	t.Run("balance paid concurrently advances status", func(t *testing.T) {
		repo := &versionedOrders{order: entities.Order{
			ID: "ord-1", Currency: "USD", Status: lifecycle.OrderStatusPendingPayment, TotalAmount: money(1000),
		}}
		uc := NewOrderUseCase(repo, nil, nil, nil, nil, OrderConfig{}, zerolog.Nop())
		uc.now = func() time.Time { return fixedNow }

		repo.beforeUpdate = func() {
			if _, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(400)); err != nil {
				t.Fatalf("competing verification failed: %v", err)
			}
		}
		res, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(600))
		if err != nil || res.Status != lifecycle.OrderStatusPaymentReceived {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}
	})

	t.Run("fully paid by the competing write", func(t *testing.T) {
		repo := &versionedOrders{order: entities.Order{
			ID: "ord-1", Currency: "USD", Status: lifecycle.OrderStatusPendingPayment, TotalAmount: money(1000),
		}}
		uc := NewOrderUseCase(repo, nil, nil, nil, nil, OrderConfig{}, zerolog.Nop())
		uc.now = func() time.Time { return fixedNow }

		repo.beforeUpdate = func() {
			if _, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(1000)); err != nil {
				t.Fatalf("competing verification failed: %v", err)
			}
		}
		_, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(400))
		if !errors.Is(err, ErrActionNotPermitted) {
			t.Fatalf("expected ErrActionNotPermitted, got %v", err)
		}
		if !repo.order.PaymentAmountConfirmed.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("unexpected stored amount: %v", repo.order.PaymentAmountConfirmed)
		}
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		uc, m := newOrderUseCaseForTest(t)
		current := entities.Order{ID: "ord-1", Status: lifecycle.OrderStatusPendingPayment, TotalAmount: money(1000)}
		m.repo.EXPECT().GetByID(gomock.Any(), "ord-1").Return(current, nil).Times(maxWriteAttempts)
		m.repo.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).Return(entities.Order{}, interfaces.ErrConcurrentUpdate).Times(maxWriteAttempts)

		_, err := uc.VerifyPayment(context.Background(), "ord-1", decimal.NewFromInt(400))
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})
}
