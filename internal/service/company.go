package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/biztime/internal/errs"
	"github.com/deppfellow/biztime/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type CompanyService struct {
	repo CompanyRepository
}

func NewCompanyService(repo CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []model.Company{}
	}
	return companies, nil
}

// Get returns the company with the ids of its invoices.
func (s *CompanyService) Get(ctx context.Context, code string) (*model.CompanyWithInvoices, error) {
	company, err := s.repo.Get(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Can't find company with a code of %s", code), true, nil)
	}
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.InvoiceIDs(ctx, code)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}

	return &model.CompanyWithInvoices{Company: *company, Invoices: ids}, nil
}

func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	company, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("company_code", company.Code).Msg("company created")

	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, req *model.UpdateCompanyRequest) (*model.Company, error) {
	company, err := s.repo.Update(ctx, req)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Can't update company of %s", req.Code), true, nil)
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, code string) error {
	err := s.repo.Delete(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError(fmt.Sprintf("No such company: %s", code), true, nil)
	}
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("company_code", code).Msg("company deleted")

	return nil
}
