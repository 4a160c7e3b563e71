// Package memrepo is an in-memory stand-in for the postgres repositories.
//
// It follows the schema in repository/testdata/schema.sql: NOT NULL, UNIQUE,
// CHECK and foreign key violations come back as *pgconn.PgError with the
// SQLSTATE, table, column and constraint postgres would report, deleting a
// company cascades to its invoices, and missing rows yield pgx.ErrNoRows.
package memrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deppfellow/biztime/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

// Store holds both tables. Rows keep insertion order, like a heap scan.
type Store struct {
	mu        sync.Mutex
	companies []model.Company
	invoices  []model.Invoice
	lastID    int64
	now       func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Companies returns a CompanyRepository backed by s.
func (s *Store) Companies() *CompanyRepository {
	return &CompanyRepository{store: s}
}

// Invoices returns an InvoiceRepository backed by s.
func (s *Store) Invoices() *InvoiceRepository {
	return &InvoiceRepository{store: s}
}

func (s *Store) companyIndex(code string) int {
	_, idx, _ := lo.FindIndexOf(s.companies, func(c model.Company) bool { return c.Code == code })
	return idx
}

func (s *Store) invoiceIndex(id int64) int {
	_, idx, _ := lo.FindIndexOf(s.invoices, func(inv model.Invoice) bool { return inv.ID == id })
	return idx
}

func (s *Store) today() pgtype.Date {
	year, month, day := s.now().Date()
	return pgtype.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func notNull(table, column string) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23502",
		Message:    fmt.Sprintf("null value in column %q of relation %q violates not-null constraint", column, table),
		TableName:  table,
		ColumnName: column,
	}
}

func uniqueViolation(table, constraint, column, value string) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		Detail:         fmt.Sprintf("Key (%s)=(%s) already exists.", column, value),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "invoices" violates foreign key constraint "invoices_comp_code_fkey"`,
		Detail:         fmt.Sprintf("Key (comp_code)=(%s) is not present in table \"companies\".", code),
		TableName:      "invoices",
		ConstraintName: "invoices_comp_code_fkey",
	}
}

func amtCheckViolation() *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        `new row for relation "invoices" violates check constraint "invoices_amt_check"`,
		TableName:      "invoices",
		ConstraintName: "invoices_amt_check",
	}
}

// CompanyRepository implements the company store contract in memory.
type CompanyRepository struct {
	store *Store
}

func (r *CompanyRepository) List(context.Context) ([]model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return append([]model.Company{}, r.store.companies...), nil
}

func (r *CompanyRepository) Get(_ context.Context, code string) (*model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.companyIndex(code)
	if idx < 0 {
		return nil, fmt.Errorf("get company %q: %w", code, pgx.ErrNoRows)
	}

	company := r.store.companies[idx]
	return &company, nil
}

func (r *CompanyRepository) InvoiceIDs(_ context.Context, code string) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// ids are handed out in increasing order, so insertion order is id order.
	return lo.FilterMap(r.store.invoices, func(inv model.Invoice, _ int) (int64, bool) {
		return inv.ID, inv.CompCode == code
	}), nil
}

func (r *CompanyRepository) Create(_ context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	switch {
	case req.Code == nil:
		return nil, fmt.Errorf("create company: %w", notNull("companies", "code"))
	case req.Name == nil:
		return nil, fmt.Errorf("create company: %w", notNull("companies", "name"))
	case r.store.companyIndex(*req.Code) >= 0:
		return nil, fmt.Errorf("create company: %w", uniqueViolation("companies", "companies_pkey", "code", *req.Code))
	case r.nameTaken(*req.Name, ""):
		return nil, fmt.Errorf("create company: %w", uniqueViolation("companies", "companies_name_key", "name", *req.Name))
	}

	company := model.Company{Code: *req.Code, Name: *req.Name, Description: req.Description}
	r.store.companies = append(r.store.companies, company)

	return &company, nil
}

func (r *CompanyRepository) Update(_ context.Context, req *model.UpdateCompanyRequest) (*model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.companyIndex(req.Code)
	if idx < 0 {
		return nil, fmt.Errorf("update company %q: %w", req.Code, pgx.ErrNoRows)
	}

	if req.Name == nil {
		return nil, fmt.Errorf("update company %q: %w", req.Code, notNull("companies", "name"))
	}
	if r.nameTaken(*req.Name, req.Code) {
		return nil, fmt.Errorf("update company %q: %w", req.Code, uniqueViolation("companies", "companies_name_key", "name", *req.Name))
	}

	r.store.companies[idx].Name = *req.Name
	r.store.companies[idx].Description = req.Description

	company := r.store.companies[idx]
	return &company, nil
}

// Delete removes the company and, through the cascade, its invoices.
func (r *CompanyRepository) Delete(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.companyIndex(code) < 0 {
		return fmt.Errorf("delete company %q: %w", code, pgx.ErrNoRows)
	}

	r.store.companies = lo.Reject(r.store.companies, func(c model.Company, _ int) bool { return c.Code == code })
	r.store.invoices = lo.Reject(r.store.invoices, func(inv model.Invoice, _ int) bool { return inv.CompCode == code })

	return nil
}

func (r *CompanyRepository) nameTaken(name, exceptCode string) bool {
	return lo.ContainsBy(r.store.companies, func(c model.Company) bool {
		return c.Name == name && c.Code != exceptCode
	})
}

// InvoiceRepository implements the invoice store contract in memory.
type InvoiceRepository struct {
	store *Store
}

func (r *InvoiceRepository) List(context.Context) ([]model.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return append([]model.Invoice{}, r.store.invoices...), nil
}

func (r *InvoiceRepository) GetDetail(_ context.Context, id int64) (*model.InvoiceDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.invoiceIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("get invoice %d: %w", id, pgx.ErrNoRows)
	}

	invoice := r.store.invoices[idx]
	company := r.store.companies[r.store.companyIndex(invoice.CompCode)]

	return &model.InvoiceDetail{Invoice: invoice.Summary(), Company: company}, nil
}

func (r *InvoiceRepository) Create(_ context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	switch {
	case req.CompCode == nil:
		return nil, fmt.Errorf("create invoice: %w", notNull("invoices", "comp_code"))
	case req.Amt == nil:
		return nil, fmt.Errorf("create invoice: %w", notNull("invoices", "amt"))
	case *req.Amt <= 0:
		return nil, fmt.Errorf("create invoice: %w", amtCheckViolation())
	case r.store.companyIndex(*req.CompCode) < 0:
		return nil, fmt.Errorf("create invoice: %w", foreignKeyViolation(*req.CompCode))
	}

	r.store.lastID++
	invoice := model.Invoice{
		ID:       r.store.lastID,
		CompCode: *req.CompCode,
		Amt:      *req.Amt,
		AddDate:  r.store.today(),
	}
	r.store.invoices = append(r.store.invoices, invoice)

	return &invoice, nil
}

// Update holds the store lock across change, which gives the same isolation
// as the row lock taken by the postgres repository.
func (r *InvoiceRepository) Update(
	_ context.Context,
	id int64,
	change func(current model.Invoice) (model.InvoiceChange, error),
) (*model.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.invoiceIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("update invoice %d: %w", id, pgx.ErrNoRows)
	}

	next, err := change(r.store.invoices[idx])
	if err != nil {
		return nil, fmt.Errorf("update invoice %d: %w", id, err)
	}

	switch {
	case next.Amt == nil:
		return nil, fmt.Errorf("update invoice %d: %w", id, notNull("invoices", "amt"))
	case *next.Amt <= 0:
		return nil, fmt.Errorf("update invoice %d: %w", id, amtCheckViolation())
	}

	invoice := &r.store.invoices[idx]
	invoice.Amt = *next.Amt
	invoice.Paid = next.Paid
	invoice.PaidDate = next.PaidDate

	updated := *invoice
	return &updated, nil
}

func (r *InvoiceRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.invoiceIndex(id) < 0 {
		return fmt.Errorf("delete invoice %d: %w", id, pgx.ErrNoRows)
	}

	r.store.invoices = lo.Reject(r.store.invoices, func(inv model.Invoice, _ int) bool { return inv.ID == id })

	return nil
}
