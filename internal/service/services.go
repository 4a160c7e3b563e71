package service

import (
	"github.com/deppfellow/biztime/internal/repository"
)

type Services struct {
	Company *CompanyService
	Invoice *InvoiceService
}

func NewService(repos *repository.Repositories, opts ...InvoiceOption) (*Services, error) {
	return &Services{
		Company: NewCompanyService(repos.Companies),
		Invoice: NewInvoiceService(repos.Invoices, opts...),
	}, nil
}
