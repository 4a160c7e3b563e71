package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/biztime/internal/errs"
	"github.com/deppfellow/biztime/internal/model"
	"github.com/deppfellow/biztime/internal/repository/memrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_GetWithInvoices(t *testing.T) {
	ctx := context.Background()
	store := memrepo.New()
	svc := NewCompanyService(store.Companies())

	_, err := svc.Create(ctx, &model.CreateCompanyRequest{Code: ptr("ibm"), Name: ptr("IBM"), Description: ptr("Big blue")})
	require.NoError(t, err)

	company, err := svc.Get(ctx, "ibm")
	require.NoError(t, err)
	assert.Equal(t, "IBM", company.Name)
	assert.NotNil(t, company.Invoices)
	assert.Empty(t, company.Invoices)

	inv, err := store.Invoices().Create(ctx, &model.CreateInvoiceRequest{CompCode: ptr("ibm"), Amt: ptr(5.0)})
	require.NoError(t, err)

	company, err = svc.Get(ctx, "ibm")
	require.NoError(t, err)
	assert.Equal(t, []int64{inv.ID}, company.Invoices)
}

func TestCompanyService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewCompanyService(memrepo.New().Companies())

	tests := []struct {
		name    string
		call    func() error
		message string
	}{
		{"get", func() error { _, err := svc.Get(ctx, "acme"); return err }, "Can't find company with a code of acme"},
		{"update", func() error {
			_, err := svc.Update(ctx, &model.UpdateCompanyRequest{Code: "acme", Name: ptr("Acme")})
			return err
		}, "Can't update company of acme"},
		{"delete", func() error { return svc.Delete(ctx, "acme") }, "No such company: acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.True(t, errors.As(tt.call(), &httpErr))
			assert.Equal(t, http.StatusNotFound, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestCompanyService_ListEmpty(t *testing.T) {
	companies, err := NewCompanyService(memrepo.New().Companies()).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}
