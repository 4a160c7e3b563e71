package handler

import (
	"github.com/deppfellow/biztime/internal/model"
	"github.com/deppfellow/biztime/internal/server"
	"github.com/deppfellow/biztime/internal/service"
	"github.com/labstack/echo/v4"
)

type CompanyHandler struct {
	Handler
	service *service.CompanyService
}

func NewCompanyHandler(s *server.Server, svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

func (h *CompanyHandler) ListCompanies(c echo.Context, _ *model.ListCompaniesRequest) (*model.CompaniesResponse, error) {
	companies, err := h.service.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.CompaniesResponse{Companies: companies}, nil
}

func (h *CompanyHandler) GetCompany(c echo.Context, req *model.CompanyCodeRequest) (*model.CompanyDetailResponse, error) {
	company, err := h.service.Get(c.Request().Context(), req.Code)
	if err != nil {
		return nil, err
	}
	return &model.CompanyDetailResponse{Company: *company}, nil
}

func (h *CompanyHandler) CreateCompany(c echo.Context, req *model.CreateCompanyRequest) (*model.CompanyResponse, error) {
	company, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.CompanyResponse{Company: *company}, nil
}

func (h *CompanyHandler) UpdateCompany(c echo.Context, req *model.UpdateCompanyRequest) (*model.CompanyResponse, error) {
	company, err := h.service.Update(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.CompanyResponse{Company: *company}, nil
}

func (h *CompanyHandler) DeleteCompany(c echo.Context, req *model.CompanyCodeRequest) (*model.StatusResponse, error) {
	if err := h.service.Delete(c.Request().Context(), req.Code); err != nil {
		return nil, err
	}
	deleted := model.Deleted()
	return &deleted, nil
}
