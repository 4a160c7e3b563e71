package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/biztime/internal/model"
	"github.com/jackc/pgx/v5"
)

const (
	listCompaniesSQL = `SELECT code, name, description FROM companies`

	getCompanySQL = `SELECT code, name, description FROM companies WHERE code = $1`

	listCompanyInvoiceIDsSQL = `SELECT id FROM invoices WHERE comp_code = $1 ORDER BY id`

	createCompanySQL = `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description
	`

	updateCompanySQL = `
		UPDATE companies SET name = $1, description = $2
		WHERE code = $3
		RETURNING code, name, description
	`

	deleteCompanySQL = `DELETE FROM companies WHERE code = $1`
)

type CompanyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	rows, err := r.db.Query(ctx, listCompaniesSQL)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

func (r *CompanyRepository) Get(ctx context.Context, code string) (*model.Company, error) {
	rows, err := r.db.Query(ctx, getCompanySQL, code)
	if err != nil {
		return nil, fmt.Errorf("get company %q: %w", code, err)
	}

	company, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		return nil, fmt.Errorf("get company %q: %w", code, err)
	}

	return &company, nil
}

// InvoiceIDs returns the ids of the company's invoices in ascending order.
func (r *CompanyRepository) InvoiceIDs(ctx context.Context, code string) ([]int64, error) {
	rows, err := r.db.Query(ctx, listCompanyInvoiceIDsSQL, code)
	if err != nil {
		return nil, fmt.Errorf("list invoice ids of %q: %w", code, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("list invoice ids of %q: %w", code, err)
	}

	return ids, nil
}

func (r *CompanyRepository) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	rows, err := r.db.Query(ctx, createCompanySQL, req.Code, req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	company, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	return &company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, req *model.UpdateCompanyRequest) (*model.Company, error) {
	rows, err := r.db.Query(ctx, updateCompanySQL, req.Name, req.Description, req.Code)
	if err != nil {
		return nil, fmt.Errorf("update company %q: %w", req.Code, err)
	}

	company, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		return nil, fmt.Errorf("update company %q: %w", req.Code, err)
	}

	return &company, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, deleteCompanySQL, code)
	if err != nil {
		return fmt.Errorf("delete company %q: %w", code, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete company %q: %w", code, pgx.ErrNoRows)
	}

	return nil
}
