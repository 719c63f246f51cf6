package routes

import (
	"context"
	"fmt"

	"trade_portal/internal/adapter/http/handlers"
	"trade_portal/internal/adapter/persistence/repository"
	"trade_portal/internal/infrastructure/config"
	"trade_portal/internal/infrastructure/database"
	"trade_portal/internal/infrastructure/filestore"
	"trade_portal/internal/infrastructure/notifications"
	"trade_portal/internal/infrastructure/payments"
	"trade_portal/internal/infrastructure/realtime"
	"trade_portal/internal/usecase"
	"trade_portal/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// buildHandlers connects the collaborators and builds the use cases.
// NATS is optional: without it notifications are off and changes are fanned
// out in-process.
func buildHandlers(ctx context.Context, cfg config.Config, log zerolog.Logger) (Handlers, func(), error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return Handlers{}, nil, fmt.Errorf("dynamodb: %w", err)
	}
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable)

	files, err := filestore.NewGCSFileStore(ctx, log)
	if err != nil {
		return Handlers{}, nil, err
	}
	closers := []func(){func() { _ = files.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var notifier interfaces.INotifier
	var feed interfaces.IChangeFeed = realtime.NewLocalChangeFeed()
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("trade-portal"), nats.MaxReconnects(-1))
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NATSURL).Msg("nats unavailable; notifications disabled, change feed is local")
		} else {
			closers = append(closers, func() { _ = nc.Drain() })
			notifier = notifications.NewNATSNotifier(nc, log)
			feed = realtime.NewNATSChangeFeed(nc, log)
		}
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn().Err(err).Msg("Mercado Pago gateway not configured")
	} else {
		gateway = mpGateway
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo, quoteRepo, files, notifier, feed, usecase.OrderConfig{
		ProofBucket:  cfg.ProofBucket,
		ProofExpiry:  cfg.ProofExpiry,
		SignedURLTTL: cfg.SignedURLTTL,
		MaxProofSize: cfg.MaxProofSize,
	}, log)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, files, notifier, feed, cfg.SignedURLTTL, log)
	paymentUseCase := usecase.NewOrderPaymentUseCase(orderRepo, gateway, notifier, feed, log)

	return Handlers{
		Statuses:      handlers.NewStatusHandler(),
		Orders:        handlers.NewOrderHandler(orderUseCase, cfg.SignedURLTTL, log),
		AdminOrders:   handlers.NewAdminOrderHandler(orderUseCase, log),
		Quotes:        handlers.NewQuoteHandler(quoteUseCase, cfg.SignedURLTTL, log),
		OrderPayments: handlers.NewOrderPaymentHandler(paymentUseCase, cfg.PaymentGatewayMock, log),
		Events:        handlers.NewEventsHandler(feed, log),
	}, cleanup, nil
}
