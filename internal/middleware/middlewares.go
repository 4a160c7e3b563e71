package middleware

import (
	"github.com/deppfellow/biztime/internal/server"
)

// Middlewares groups every middleware component used by the HTTP server so
// the router builds them once.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware; it is a no-op without a license key.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components from the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
