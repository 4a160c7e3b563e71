// Package handler is the first layer after the router.
//
// It binds requests through the validation package, calls the
// service layer and writes the JSON envelope for each endpoint.
package handler

import (
	"github.com/deppfellow/biztime/internal/server"
	"github.com/deppfellow/biztime/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Company *CompanyHandler
	Invoice *InvoiceHandler
	Health  *HealthHandler  // Health serves GET /status.
	OpenAPI *OpenAPIHandler // OpenAPI serves the embedded API description and docs UI.
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Company: NewCompanyHandler(s, services.Company),
		Invoice: NewInvoiceHandler(s, services.Invoice),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
