package routes

import (
	"context"
	"strconv"

	"trade_portal/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run(cfg config.Config, log zerolog.Logger) {
	ctx := context.Background()

	h, cleanup, err := buildHandlers(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire dependencies")
	}
	defer cleanup()

	router := NewRouter(h, cfg, log)

	log.Info().Int("port", cfg.Port).Msg("starting trade portal api")
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Fatal().Err(err).Msg("failed to startup the application")
	}
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(h Handlers, cfg config.Config, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPortalRoutes(v1, h, cfg.MaxProofSize)
	return router
}

func setMiddlewares(router *gin.Engine, log zerolog.Logger) {
	router.Use(requestLogger(log))
	router.Use(recovery(log))
}
