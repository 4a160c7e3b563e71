package model

// Company is a row of the companies table.
type Company struct {
	Code        string  `json:"code" db:"code"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

// CompanyWithInvoices is a company plus the ids of its invoices, ordered by id.
type CompanyWithInvoices struct {
	Company
	Invoices []int64 `json:"invoices"`
}

// CompaniesResponse wraps the company list.
type CompaniesResponse struct {
	Companies []Company `json:"companies"`
}

// CompanyResponse wraps a single company.
type CompanyResponse struct {
	Company Company `json:"company"`
}

// CompanyDetailResponse wraps a company together with its invoice ids.
type CompanyDetailResponse struct {
	Company CompanyWithInvoices `json:"company"`
}

// ---- requests

type ListCompaniesRequest struct{}

func (r *ListCompaniesRequest) Validate() error { return nil }

// CompanyCodeRequest addresses one company by its code.
type CompanyCodeRequest struct {
	Code string `param:"code" json:"-" validate:"required"`
}

func (r *CompanyCodeRequest) Validate() error {
	return validate.Struct(r)
}

type CreateCompanyRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r *CreateCompanyRequest) Validate() error { return nil }

type UpdateCompanyRequest struct {
	Code        string  `param:"code" json:"-" validate:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r *UpdateCompanyRequest) Validate() error {
	return validate.Struct(r)
}
