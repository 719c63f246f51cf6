package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the runtime configuration of the portal API.
//
// Values come from the environment; a local .env file is loaded by main
// through godotenv/autoload before Load runs.
type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	OrdersTable        string
	QuotesTable        string

	ProofBucket  string
	SignedURLTTL time.Duration
	ProofExpiry  time.Duration
	MaxProofSize int

	NATSURL string

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
}

// Load reads the configuration. Malformed numbers and durations fall back
// to their defaults.
func Load() Config {
	return Config{
		Port:      getenvInt("PORT", 8080),
		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogPretty: getenvBool("LOG_PRETTY"),

		AWSRegion:          getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),
		OrdersTable:        getenvDefault("ORDERS_TABLE", "orders"),
		QuotesTable:        getenvDefault("QUOTES_TABLE", "quotes"),

		ProofBucket:  getenvDefault("PAYMENT_PROOFS_BUCKET", "payment-proofs"),
		SignedURLTTL: getenvDuration("SIGNED_URL_TTL", 15*time.Minute),
		ProofExpiry:  getenvDuration("PAYMENT_PROOF_EXPIRY", 72*time.Hour),
		MaxProofSize: getenvInt("PAYMENT_PROOF_MAX_BYTES", 10<<20),

		NATSURL: os.Getenv("NATS_URL"),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     getenvBool("PAYMENT_GATEWAY_MOCK") || getenvBool("MERCADOPAGO_MOCK"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
