package httpserver

import (
	"context"

	"qa-triage-assistant/internal/model"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	// CORS recovery
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "CORS mode: production")
	} else {
		srv.l.Infof(ctx, "CORS mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	// CI failure webhook
	if srv.failureHandler != nil {
		srv.gin.POST("/webhook/failure", srv.failureHandler.HandleFailure)
		srv.l.Infof(ctx, "Failure webhook route registered at POST /webhook/failure")
	} else {
		srv.l.Infof(ctx, "Failure handler not configured, skipping webhook route")
	}

	// Slack interactivity callback
	if srv.interactHandler != nil {
		srv.gin.POST("/slack/interact", srv.interactHandler.HandleInteraction)
		srv.l.Infof(ctx, "Slack interactivity route registered at POST /slack/interact")
	} else {
		srv.l.Infof(ctx, "Interact handler not configured, skipping Slack route")
	}

	// PRD parsing
	if srv.prdHandler != nil {
		srv.gin.GET("/prd/parse", srv.prdHandler.HandleParse)
		srv.l.Infof(ctx, "PRD parsing route registered at GET /prd/parse")
	} else {
		srv.l.Infof(ctx, "PRD handler not configured, skipping PRD route")
	}

	return nil
}
