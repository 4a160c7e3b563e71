package router

import (
	"github.com/deppfellow/biztime/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the API itself.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
