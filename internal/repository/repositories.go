package repository

import (
	"github.com/deppfellow/biztime/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Companies *CompanyRepository
	Invoices  *InvoiceRepository
}

// NewRepositories builds every repository on top of the shared pool in s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Companies: NewCompanyRepository(s.DB.Pool),
		Invoices:  NewInvoiceRepository(s.DB.Pool),
	}
}
