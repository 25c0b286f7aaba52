package bootstrap

import (
	"fmt"

	"github.com/steveiliop56/tinyoauth/internal/controller"
	"github.com/steveiliop56/tinyoauth/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (app *BootstrapApp) setupRouter() (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())

	if len(app.config.TrustedProxies) > 0 {
		err := engine.SetTrustedProxies(app.config.TrustedProxies)

		if err != nil {
			return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	zerologMiddleware := middleware.NewZerologMiddleware()

	err := zerologMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize zerolog middleware: %w", err)
	}

	engine.Use(zerologMiddleware.Middleware())

	contextMiddleware := middleware.NewContextMiddleware(app.services.identityService)

	err = contextMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize context middleware: %w", err)
	}

	engine.Use(contextMiddleware.Middleware())

	bearerMiddleware := middleware.NewBearerMiddleware(app.services.tokenService, app.services.identityService)

	err = bearerMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize bearer middleware: %w", err)
	}

	rootRouter := &engine.RouterGroup
	apiRouter := engine.Group("/api")

	oauthController := controller.NewOAuthController(rootRouter, app.services.grantService, app.services.tokenService, app.services.identityService, bearerMiddleware)

	oauthController.SetupRoutes()

	clientDataController := controller.NewClientDataController(rootRouter, app.services.dataService, bearerMiddleware)

	clientDataController.SetupRoutes()

	contextController := controller.NewContextController(apiRouter, bearerMiddleware)

	contextController.SetupRoutes()

	clientController := controller.NewClientController(apiRouter, app.services.clientService, app.services.dataService)

	clientController.SetupRoutes()

	authorizedAppsController := controller.NewAuthorizedAppsController(apiRouter, app.services.authorizedAppsService)

	authorizedAppsController.SetupRoutes()

	healthController := controller.NewHealthController(apiRouter)

	healthController.SetupRoutes()

	if app.services.metricsService != nil {
		metricsPath := app.config.Metrics.Path

		if metricsPath == "" {
			metricsPath = "/metrics"
		}

		engine.GET(metricsPath, gin.WrapH(app.services.metricsService.Handler()))
	}

	return engine, nil
}
