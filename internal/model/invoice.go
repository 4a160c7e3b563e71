package model

import "github.com/jackc/pgx/v5/pgtype"

// Invoice is a row of the invoices table.
//
// AddDate and PaidDate serialize as "YYYY-MM-DD"; an unset PaidDate is null.
type Invoice struct {
	ID       int64       `json:"id" db:"id"`
	CompCode string      `json:"comp_code" db:"comp_code"`
	Amt      float64     `json:"amt" db:"amt"`
	Paid     bool        `json:"paid" db:"paid"`
	AddDate  pgtype.Date `json:"add_date" db:"add_date"`
	PaidDate pgtype.Date `json:"paid_date" db:"paid_date"`
}

// InvoiceSummary is the invoice part of the detail view; the owning company is
// reported beside it instead of as comp_code.
type InvoiceSummary struct {
	ID       int64       `json:"id"`
	Amt      float64     `json:"amt"`
	Paid     bool        `json:"paid"`
	AddDate  pgtype.Date `json:"add_date"`
	PaidDate pgtype.Date `json:"paid_date"`
}

// InvoiceDetail is an invoice joined with the company that owns it.
type InvoiceDetail struct {
	Invoice InvoiceSummary `json:"invoice"`
	Company Company        `json:"company"`
}

// Summary drops the company code from inv.
func (inv Invoice) Summary() InvoiceSummary {
	return InvoiceSummary{
		ID:       inv.ID,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
	}
}

// InvoiceChange is the set of columns an invoice update writes. A nil Amt is
// written as NULL.
type InvoiceChange struct {
	Amt      *float64
	Paid     bool
	PaidDate pgtype.Date
}

// InvoicesResponse wraps the invoice list.
type InvoicesResponse struct {
	Invoices []Invoice `json:"invoices"`
}

// InvoiceResponse wraps a single invoice row.
type InvoiceResponse struct {
	Invoice Invoice `json:"invoice"`
}

// InvoiceDetailResponse wraps the joined view, giving the
// {invoice: {invoice: {...}, company: {...}}} shape.
type InvoiceDetailResponse struct {
	Invoice InvoiceDetail `json:"invoice"`
}

// ---- requests

type ListInvoicesRequest struct{}

func (r *ListInvoicesRequest) Validate() error { return nil }

// InvoiceIDRequest addresses one invoice. A non-numeric id fails binding.
type InvoiceIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *InvoiceIDRequest) Validate() error { return nil }

type CreateInvoiceRequest struct {
	CompCode *string  `json:"comp_code"`
	Amt      *float64 `json:"amt"`
}

func (r *CreateInvoiceRequest) Validate() error { return nil }

// UpdateInvoiceRequest carries the new amount and paid flag. When Paid is
// omitted the invoice keeps its current paid state.
type UpdateInvoiceRequest struct {
	ID   int64    `param:"id" json:"-"`
	Amt  *float64 `json:"amt"`
	Paid *bool    `json:"paid"`
}

func (r *UpdateInvoiceRequest) Validate() error { return nil }
