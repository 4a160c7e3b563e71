// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/biztime/internal/handler"
	"github.com/deppfellow/biztime/internal/middleware"
	"github.com/deppfellow/biztime/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain and
// every route registered.
//
// Order matters: the request id must exist before the context logger is
// built, and the New Relic transaction before trace ids are read from it.
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
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerCompanyRoutes(router, h)
	registerInvoiceRoutes(router, h)

	return router
}
