package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/biztime/internal/errs"
	"github.com/deppfellow/biztime/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

type InvoiceService struct {
	repo InvoiceRepository
	now  func() time.Time
}

// InvoiceOption configures an InvoiceService.
type InvoiceOption func(*InvoiceService)

// WithClock replaces the clock used to stamp paid_date.
func WithClock(now func() time.Time) InvoiceOption {
	return func(s *InvoiceService) {
		s.now = now
	}
}

func NewInvoiceService(repo InvoiceRepository, opts ...InvoiceOption) *InvoiceService {
	s := &InvoiceService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InvoiceService) List(ctx context.Context) ([]model.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	return invoices, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int64) (*model.InvoiceDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("No such invoice: %d", id), true, nil)
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *InvoiceService) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	invoice, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("invoice_id", invoice.ID).
		Str("company_code", invoice.CompCode).
		Msg("invoice created")

	return invoice, nil
}

// Update writes the new amount and paid flag, moving paid_date with the
// paid-state machine. An omitted paid flag keeps the current one.
func (s *InvoiceService) Update(ctx context.Context, req *model.UpdateInvoiceRequest) (*model.Invoice, error) {
	invoice, err := s.repo.Update(ctx, req.ID, func(current model.Invoice) (model.InvoiceChange, error) {
		paid := current.Paid
		if req.Paid != nil {
			paid = *req.Paid
		}

		return model.InvoiceChange{
			Amt:      req.Amt,
			Paid:     paid,
			PaidDate: NextPaidDate(current, paid, s.now()),
		}, nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Can't update invoice: %d", req.ID), true, nil)
	}
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError(fmt.Sprintf("No such invoice: %d", id), true, nil)
	}
	return err
}

// NextPaidDate returns the paid_date an invoice should have once its paid flag
// becomes paid:
//
//	unpaid -> paid:    today
//	paid   -> unpaid:  null
//	otherwise:         unchanged
func NextPaidDate(current model.Invoice, paid bool, now time.Time) pgtype.Date {
	switch {
	case !current.Paid && paid:
		return pgtype.Date{Time: dateOf(now), Valid: true}
	case current.Paid && !paid:
		return pgtype.Date{}
	default:
		return current.PaidDate
	}
}

// dateOf truncates t to its calendar day, keeping the local date.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
