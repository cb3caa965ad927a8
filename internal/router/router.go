// Package router initializes the echo router.
//
// It registers the middleware chain and maps route groups to their
// handlers.
package router

import (
	"github.com/deppfellow/form-builder/internal/handler"
	"github.com/deppfellow/form-builder/internal/middleware"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance.
//
// Middleware order matters:
//   - RequestID before anything that logs
//   - NewRelic before EnhanceTracing and ContextEnhancer, which read the
//     transaction
//   - ContextEnhancer before RequestLogger and the rate limiter, which log
//     through it
//   - the rate limiter inside RequestLogger, so denied requests are logged
//     with their 429
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limiter(middlewares.RateLimit.Store()),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1", middlewares.Auth.Authenticate)
	registerFormRoutes(v1, h)

	return router
}
