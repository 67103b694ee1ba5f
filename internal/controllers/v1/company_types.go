package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/models"
)

type CompanyEditable struct {
	Name         string `json:"name" example:"ООО Вендинг Плюс"`                   // Name of the company
	ContactEmail string `json:"contactEmail" example:"office@vending.example.com"` // Email address of the contact person
	ContactPhone string `json:"contactPhone" example:"+7 (495) 123-45-67"`         // Phone number of the contact person
	Address      string `json:"address" example:"Москва, ул. Ленина, 1"`           // Postal address
}

// model returns the database resource for the API representation of the editable fields
func (editable CompanyEditable) model() models.Company {
	return models.Company{
		Name:         editable.Name,
		ContactEmail: editable.ContactEmail,
		ContactPhone: editable.ContactPhone,
		Address:      editable.Address,
	}
}

type CompanyLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/companies/d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"`          // The company itself
	Devices   string `json:"devices" example:"https://example.com/api/v1/devices?company=d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"` // Devices of the company
	Contracts string `json:"contracts" example:"https://example.com/api/v1/contracts?company=d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"`
}

type Company struct {
	models.DefaultModel
	CompanyEditable
	Links CompanyLinks `json:"links"`
}

// newCompany returns the API v1 representation of the resource
func newCompany(c *gin.Context, model models.Company) Company {
	url := c.GetString(string(models.DBContextURL))

	return Company{
		DefaultModel: model.DefaultModel,
		CompanyEditable: CompanyEditable{
			Name:         model.Name,
			ContactEmail: model.ContactEmail,
			ContactPhone: model.ContactPhone,
			Address:      model.Address,
		},
		Links: CompanyLinks{
			Self:      fmt.Sprintf("%s/v1/companies/%s", url, model.ID),
			Devices:   fmt.Sprintf("%s/v1/devices?company=%s", url, model.ID),
			Contracts: fmt.Sprintf("%s/v1/contracts?company=%s", url, model.ID),
		},
	}
}

type CompanyListResponse struct {
	Data       []Company   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CompanyCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CompanyResponse `json:"data"`                                                          // List of created resources
}

func (r *CompanyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CompanyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CompanyResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Company `json:"data"`                                                          // The resource
}

type CompanyQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first company returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of companies to return. Defaults to 50.
}
