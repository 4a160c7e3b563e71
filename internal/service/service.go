// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives bound request data from the handler, turns "no row"
// outcomes into resource specific 404s and applies the invoice
// paid-state rule before calling repository methods.
package service

import (
	"context"

	"github.com/deppfellow/biztime/internal/model"
)

// CompanyRepository is the store contract CompanyService needs.
// Lookups of an unknown code return an error wrapping pgx.ErrNoRows.
type CompanyRepository interface {
	List(ctx context.Context) ([]model.Company, error)
	Get(ctx context.Context, code string) (*model.Company, error)
	InvoiceIDs(ctx context.Context, code string) ([]int64, error)
	Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error)
	Update(ctx context.Context, req *model.UpdateCompanyRequest) (*model.Company, error)
	Delete(ctx context.Context, code string) error
}

// InvoiceRepository is the store contract InvoiceService needs.
//
// Update must hold the row between reading it and writing the change
// returned by change, and must not call change for an unknown id.
type InvoiceRepository interface {
	List(ctx context.Context) ([]model.Invoice, error)
	GetDetail(ctx context.Context, id int64) (*model.InvoiceDetail, error)
	Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error)
	Update(ctx context.Context, id int64, change func(current model.Invoice) (model.InvoiceChange, error)) (*model.Invoice, error)
	Delete(ctx context.Context, id int64) error
}
