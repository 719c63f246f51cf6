package main

import (
	_ "trade_portal/docs"
	"trade_portal/internal/adapter/http/routes"
	"trade_portal/internal/infrastructure/config"
	"trade_portal/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Trade Portal API
// @version         1.0
// @description     Customer portal for quotes and orders: status badges, action gates, payment proofs and delivery.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	routes.Run(cfg, log)
}
