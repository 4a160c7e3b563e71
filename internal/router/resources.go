package router

import (
	"net/http"

	"github.com/deppfellow/biztime/internal/handler"
	"github.com/deppfellow/biztime/internal/model"
	"github.com/labstack/echo/v4"
)

func registerCompanyRoutes(r *echo.Echo, h *handler.Handlers) {
	companies := r.Group("/companies")
	ch := h.Company

	companies.GET("", handler.Handle(ch.Handler, ch.ListCompanies, http.StatusOK, &model.ListCompaniesRequest{}))
	companies.GET("/:code", handler.Handle(ch.Handler, ch.GetCompany, http.StatusOK, &model.CompanyCodeRequest{}))
	companies.POST("", handler.Handle(ch.Handler, ch.CreateCompany, http.StatusCreated, &model.CreateCompanyRequest{}))
	companies.PUT("/:code", handler.Handle(ch.Handler, ch.UpdateCompany, http.StatusOK, &model.UpdateCompanyRequest{}))
	companies.DELETE("/:code", handler.Handle(ch.Handler, ch.DeleteCompany, http.StatusOK, &model.CompanyCodeRequest{}))
}

func registerInvoiceRoutes(r *echo.Echo, h *handler.Handlers) {
	invoices := r.Group("/invoices")
	ih := h.Invoice

	invoices.GET("", handler.Handle(ih.Handler, ih.ListInvoices, http.StatusOK, &model.ListInvoicesRequest{}))
	invoices.GET("/:id", handler.Handle(ih.Handler, ih.GetInvoice, http.StatusOK, &model.InvoiceIDRequest{}))
	// 200, not 201, matching the existing clients.
	invoices.POST("", handler.Handle(ih.Handler, ih.CreateInvoice, http.StatusOK, &model.CreateInvoiceRequest{}))
	invoices.PUT("/:id", handler.Handle(ih.Handler, ih.UpdateInvoice, http.StatusOK, &model.UpdateInvoiceRequest{}))
	invoices.DELETE("/:id", handler.Handle(ih.Handler, ih.DeleteInvoice, http.StatusOK, &model.InvoiceIDRequest{}))
}
