package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/biztime/internal/database"
	"github.com/deppfellow/biztime/internal/model"
	"github.com/jackc/pgx/v5"
)

const invoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

const (
	listInvoicesSQL = `SELECT ` + invoiceColumns + ` FROM invoices`

	getInvoiceDetailSQL = `
		SELECT i.id, i.amt, i.paid, i.add_date, i.paid_date, c.code, c.name, c.description
		FROM invoices AS i
		INNER JOIN companies AS c ON (i.comp_code = c.code)
		WHERE i.id = $1
	`

	createInvoiceSQL = `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING ` + invoiceColumns

	lockInvoiceSQL = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`

	updateInvoiceSQL = `
		UPDATE invoices SET amt = $1, paid = $2, paid_date = $3
		WHERE id = $4
		RETURNING ` + invoiceColumns

	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1`
)

type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.db.Query(ctx, listInvoicesSQL)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	invoices, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Invoice])
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return invoices, nil
}

// GetDetail loads the invoice and its company in one joined query.
func (r *InvoiceRepository) GetDetail(ctx context.Context, id int64) (*model.InvoiceDetail, error) {
	var detail model.InvoiceDetail

	err := r.db.QueryRow(ctx, getInvoiceDetailSQL, id).Scan(
		&detail.Invoice.ID,
		&detail.Invoice.Amt,
		&detail.Invoice.Paid,
		&detail.Invoice.AddDate,
		&detail.Invoice.PaidDate,
		&detail.Company.Code,
		&detail.Company.Name,
		&detail.Company.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	return &detail, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	rows, err := r.db.Query(ctx, createInvoiceSQL, req.CompCode, req.Amt)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	invoice, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Invoice])
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	return &invoice, nil
}

// Update locks the invoice row, asks change for the new column values based on
// the locked row and writes them, all in one transaction. change is not called
// when the invoice does not exist.
func (r *InvoiceRepository) Update(
	ctx context.Context,
	id int64,
	change func(current model.Invoice) (model.InvoiceChange, error),
) (*model.Invoice, error) {
	var updated model.Invoice

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, lockInvoiceSQL, id)
		if err != nil {
			return err
		}

		current, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Invoice])
		if err != nil {
			return err
		}

		next, err := change(current)
		if err != nil {
			return err
		}

		rows, err = tx.Query(ctx, updateInvoiceSQL, next.Amt, next.Paid, next.PaidDate, id)
		if err != nil {
			return err
		}

		updated, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Invoice])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update invoice %d: %w", id, err)
	}

	return &updated, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteInvoiceSQL, id)
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete invoice %d: %w", id, pgx.ErrNoRows)
	}

	return nil
}
