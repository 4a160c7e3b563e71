package handler

import (
	"github.com/deppfellow/biztime/internal/model"
	"github.com/deppfellow/biztime/internal/server"
	"github.com/deppfellow/biztime/internal/service"
	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	Handler
	service *service.InvoiceService
}

func NewInvoiceHandler(s *server.Server, svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

func (h *InvoiceHandler) ListInvoices(c echo.Context, _ *model.ListInvoicesRequest) (*model.InvoicesResponse, error) {
	invoices, err := h.service.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.InvoicesResponse{Invoices: invoices}, nil
}

func (h *InvoiceHandler) GetInvoice(c echo.Context, req *model.InvoiceIDRequest) (*model.InvoiceDetailResponse, error) {
	detail, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.InvoiceDetailResponse{Invoice: *detail}, nil
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context, req *model.CreateInvoiceRequest) (*model.InvoiceResponse, error) {
	invoice, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.InvoiceResponse{Invoice: *invoice}, nil
}

func (h *InvoiceHandler) UpdateInvoice(c echo.Context, req *model.UpdateInvoiceRequest) (*model.InvoiceResponse, error) {
	invoice, err := h.service.Update(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.InvoiceResponse{Invoice: *invoice}, nil
}

func (h *InvoiceHandler) DeleteInvoice(c echo.Context, req *model.InvoiceIDRequest) (*model.StatusResponse, error) {
	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	deleted := model.Deleted()
	return &deleted, nil
}
