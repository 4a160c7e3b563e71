package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/biztime/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to BIZTIME_TEST_DATABASE_URL and recreates the schema.
// The database is wiped, so never point it at real data.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("BIZTIME_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BIZTIME_TEST_DATABASE_URL not set, skipping postgres tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

func ptr[T any](v T) *T { return &v }

func TestCompanyRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	companies := NewCompanyRepository(pool)
	invoices := NewInvoiceRepository(pool)

	created, err := companies.Create(ctx, &model.CreateCompanyRequest{
		Code:        ptr("ibm"),
		Name:        ptr("IBM"),
		Description: ptr("Big blue"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ibm", created.Code)
	assert.Equal(t, "Big blue", *created.Description)

	list, err := companies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ids, err := companies.InvoiceIDs(ctx, "ibm")
	require.NoError(t, err)
	assert.Empty(t, ids)

	first, err := invoices.Create(ctx, &model.CreateInvoiceRequest{CompCode: ptr("ibm"), Amt: ptr(100.0)})
	require.NoError(t, err)
	second, err := invoices.Create(ctx, &model.CreateInvoiceRequest{CompCode: ptr("ibm"), Amt: ptr(200.0)})
	require.NoError(t, err)

	ids, err = companies.InvoiceIDs(ctx, "ibm")
	require.NoError(t, err)
	assert.Equal(t, []int64{first.ID, second.ID}, ids)

	updated, err := companies.Update(ctx, &model.UpdateCompanyRequest{
		Code:        "ibm",
		Name:        ptr("IBM Corp"),
		Description: ptr("Bigger blue"),
	})
	require.NoError(t, err)
	assert.Equal(t, "IBM Corp", updated.Name)

	_, err = companies.Get(ctx, "nope")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = companies.Update(ctx, &model.UpdateCompanyRequest{Code: "nope", Name: ptr("x")})
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	// Invoices go with their company.
	require.NoError(t, companies.Delete(ctx, "ibm"))
	_, err = invoices.GetDetail(ctx, first.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, companies.Delete(ctx, "ibm"), pgx.ErrNoRows)
}

func TestCompanyRepository_NotNull(t *testing.T) {
	pool := testPool(t)

	_, err := NewCompanyRepository(pool).Create(context.Background(), &model.CreateCompanyRequest{Code: ptr("ibm")})

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23502", pgErr.Code)
	assert.Equal(t, "name", pgErr.ColumnName)
}

func TestInvoiceRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	_, err := NewCompanyRepository(pool).Create(ctx, &model.CreateCompanyRequest{
		Code: ptr("apple"), Name: ptr("Apple"), Description: ptr("Maker of OSX."),
	})
	require.NoError(t, err)

	invoices := NewInvoiceRepository(pool)

	inv, err := invoices.Create(ctx, &model.CreateInvoiceRequest{CompCode: ptr("apple"), Amt: ptr(100.0)})
	require.NoError(t, err)
	assert.False(t, inv.Paid)
	assert.False(t, inv.PaidDate.Valid)
	assert.True(t, inv.AddDate.Valid)

	detail, err := invoices.GetDetail(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, detail.Invoice.ID)
	assert.Equal(t, "Apple", detail.Company.Name)

	paidOn := pgtype.Date{Time: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), Valid: true}
	updated, err := invoices.Update(ctx, inv.ID, func(current model.Invoice) (model.InvoiceChange, error) {
		assert.Equal(t, inv.ID, current.ID)
		return model.InvoiceChange{Amt: ptr(150.0), Paid: true, PaidDate: paidOn}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Amt)
	assert.True(t, updated.Paid)
	assert.True(t, updated.PaidDate.Time.Equal(paidOn.Time))

	called := false
	_, err = invoices.Update(ctx, 999999, func(model.Invoice) (model.InvoiceChange, error) {
		called = true
		return model.InvoiceChange{}, nil
	})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.False(t, called)

	list, err := invoices.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = invoices.Create(ctx, &model.CreateInvoiceRequest{CompCode: ptr("nope"), Amt: ptr(1.0)})
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)

	require.NoError(t, invoices.Delete(ctx, inv.ID))
	assert.ErrorIs(t, invoices.Delete(ctx, inv.ID), pgx.ErrNoRows)
}
