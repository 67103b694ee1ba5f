package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/internal/types"
	vuuid "github.com/vending-machines/backend/internal/uuid"
	"gorm.io/gorm"
)

type Contract struct {
	models.DefaultModel
	CompanyID      *uuid.UUID    `json:"companyId" example:"d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"` // ID of the company
	ContractNumber string        `json:"contractNumber" example:"Д-2025/017"`                      // Number of the contract
	SigningDate    types.Date    `json:"signingDate" example:"2025-01-15"`                         // Day the contract was signed
	EndDate        *types.Date   `json:"endDate" example:"2026-01-14"`                             // Last day of the contract
	Status         string        `json:"status" example:"active"`                                  // Status of the contract
	Links          ContractLinks `json:"links"`
}

type ContractLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/contracts?company=d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"` // Contracts of the same company
	Company string `json:"company" example:"https://example.com/api/v1/companies/d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"`      // The company
}

func newContract(c *gin.Context, model models.Contract) Contract {
	url := c.GetString(string(models.DBContextURL))

	links := ContractLinks{
		Self: fmt.Sprintf("%s/v1/contracts", url),
	}
	if model.CompanyID != nil {
		links.Self = fmt.Sprintf("%s/v1/contracts?company=%s", url, model.CompanyID)
		links.Company = fmt.Sprintf("%s/v1/companies/%s", url, model.CompanyID)
	}

	return Contract{
		DefaultModel:   model.DefaultModel,
		CompanyID:      model.CompanyID,
		ContractNumber: model.ContractNumber,
		SigningDate:    model.SigningDate,
		EndDate:        model.EndDate,
		Status:         model.Status,
		Links:          links,
	}
}

type ContractListResponse struct {
	Data       []Contract  `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ContractQueryFilter struct {
	CompanyID vuuid.UUID `form:"company"`                    // By ID of the company
	Status    string     `form:"status"`                     // By exact status
	Offset    uint       `form:"offset" filterField:"false"` // The offset of the first contract returned. Defaults to 0.
	Limit     int        `form:"limit" filterField:"false"`  // Maximum number of contracts to return. Defaults to 50.
}

func (f ContractQueryFilter) model() models.Contract {
	return models.Contract{
		CompanyID: f.CompanyID.Ptr(),
		Status:    f.Status,
	}
}

type Product struct {
	models.DefaultModel
	Name        string          `json:"name" example:"Капучино"`               // Name of the product
	Description string          `json:"description" example:"200 мл"`          // Description of the product
	Price       decimal.Decimal `json:"price" example:"120" multipleOf:"0.01"` // Price in RUB
}

func newProduct(_ *gin.Context, model models.Product) Product {
	return Product{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Description:  model.Description,
		Price:        model.Price,
	}
}

type ProductListResponse struct {
	Data       []Product   `json:"data"`                                                                // List of resources
	Error      *string     `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                          // Pagination information
}

type ProductQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By string in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first product returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of products to return. Defaults to 50.
}

type Sale struct {
	models.DefaultModel
	DeviceID        *uuid.UUID      `json:"deviceId" example:"3f1e2d3c-4b5a-4697-8877-66554433aa11"`        // ID of the device
	ProductID       *uuid.UUID      `json:"productId" example:"c3d2e1f0-a9b8-4c7d-8e6f-5a4b3c2d1e0f"`       // ID of the product sold
	ProductName     string          `json:"productName" example:"Капучино"`                                 // Name of the product sold
	Amount          decimal.Decimal `json:"amount" example:"120"`                                           // Price of the product sold
	SaleDateTime    time.Time       `json:"saleDateTime" example:"2025-04-02T08:15:00Z"`                    // Time of the sale
	PaymentMethodID *uuid.UUID      `json:"paymentMethodId" example:"0f9e8d7c-6b5a-4433-9211-ffeeddccbbaa"` // ID of the payment method
}

func newSale(_ *gin.Context, model models.Sale) Sale {
	sale := Sale{
		DefaultModel:    model.DefaultModel,
		DeviceID:        model.DeviceID,
		ProductID:       model.ProductID,
		SaleDateTime:    model.SaleDateTime,
		PaymentMethodID: model.PaymentMethodID,
	}

	if model.Product != nil {
		sale.ProductName = model.Product.Name
		sale.Amount = model.Product.Price
	}

	return sale
}

func withSaleProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product")
}

type SaleListResponse struct {
	Data       []Sale      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SaleQueryFilter struct {
	DeviceID        vuuid.UUID `form:"device"`                     // By ID of the device
	ProductID       vuuid.UUID `form:"product"`                    // By ID of the product
	PaymentMethodID vuuid.UUID `form:"paymentMethod"`              // By ID of the payment method
	Offset          uint       `form:"offset" filterField:"false"` // The offset of the first sale returned. Defaults to 0.
	Limit           int        `form:"limit" filterField:"false"`  // Maximum number of sales to return. Defaults to 50.
}

func (f SaleQueryFilter) model() models.Sale {
	return models.Sale{
		DeviceID:        f.DeviceID.Ptr(),
		ProductID:       f.ProductID.Ptr(),
		PaymentMethodID: f.PaymentMethodID.Ptr(),
	}
}

type BookingEditable struct {
	DeviceID      *uuid.UUID      `json:"deviceId" example:"3f1e2d3c-4b5a-4697-8877-66554433aa11"`  // ID of the device
	CompanyID     *uuid.UUID      `json:"companyId" example:"d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"` // ID of the company renting or buying the device
	StartDate     types.Date      `json:"startDate" example:"2025-05-01"`                           // First day of the booking
	EndDate       *types.Date     `json:"endDate" example:"2026-04-30"`                             // Last day of the booking
	OwnershipType string          `json:"ownershipType" example:"rent"`                             // Rent or purchase
	Insurance     bool            `json:"insurance" example:"true" default:"false"`                 // Whether the device is insured
	MonthlyCost   decimal.Decimal `json:"monthlyCost" example:"15000"`                              // Monthly cost
	AnnualCost    decimal.Decimal `json:"annualCost" example:"170000"`                              // Annual cost
	PaybackPeriod int             `json:"paybackPeriod" example:"14"`                               // Payback period in months
	Status        string          `json:"status" example:"confirmed"`                               // Status of the booking
}

// bookingConfirmed is the status of a booking that blocks the device for
// further bookings.
const bookingConfirmed = "confirmed"

// model returns the database resource for the API representation of the editable fields
func (editable BookingEditable) model() models.Booking {
	return models.Booking{
		DeviceID:      editable.DeviceID,
		CompanyID:     editable.CompanyID,
		StartDate:     editable.StartDate,
		EndDate:       editable.EndDate,
		OwnershipType: editable.OwnershipType,
		Insurance:     editable.Insurance,
		MonthlyCost:   editable.MonthlyCost,
		AnnualCost:    editable.AnnualCost,
		PaybackPeriod: editable.PaybackPeriod,
		Status:        editable.Status,
	}
}

type BookingLinks struct {
	Device  string `json:"device" example:"https://example.com/api/v1/devices/3f1e2d3c-4b5a-4697-8877-66554433aa11"`    // The booked device
	Company string `json:"company" example:"https://example.com/api/v1/companies/d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"` // The company that booked the device
}

type Booking struct {
	models.DefaultModel
	BookingEditable
	Links BookingLinks `json:"links"`
}

func newBooking(c *gin.Context, model models.Booking) Booking {
	url := c.GetString(string(models.DBContextURL))

	var links BookingLinks
	if model.DeviceID != nil {
		links.Device = fmt.Sprintf("%s/v1/devices/%s", url, model.DeviceID)
	}
	if model.CompanyID != nil {
		links.Company = fmt.Sprintf("%s/v1/companies/%s", url, model.CompanyID)
	}

	return Booking{
		DefaultModel: model.DefaultModel,
		BookingEditable: BookingEditable{
			DeviceID:      model.DeviceID,
			CompanyID:     model.CompanyID,
			StartDate:     model.StartDate,
			EndDate:       model.EndDate,
			OwnershipType: model.OwnershipType,
			Insurance:     model.Insurance,
			MonthlyCost:   model.MonthlyCost,
			AnnualCost:    model.AnnualCost,
			PaybackPeriod: model.PaybackPeriod,
			Status:        model.Status,
		},
		Links: links,
	}
}

type BookingListResponse struct {
	Data       []Booking   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BookingCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BookingResponse `json:"data"`                                                          // List of created resources
}

func (r *BookingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, BookingResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BookingResponse struct {
	Error *string  `json:"error" example:"the device already has a confirmed booking"` // The error, if any occurred
	Data  *Booking `json:"data"`                                                       // The resource
}

type BookingQueryFilter struct {
	DeviceID  vuuid.UUID `form:"device"`                     // By ID of the device
	CompanyID vuuid.UUID `form:"company"`                    // By ID of the company
	Status    string     `form:"status"`                     // By exact status
	Offset    uint       `form:"offset" filterField:"false"` // The offset of the first booking returned. Defaults to 0.
	Limit     int        `form:"limit" filterField:"false"`  // Maximum number of bookings to return. Defaults to 50.
}

func (f BookingQueryFilter) model() models.Booking {
	return models.Booking{
		DeviceID:  f.DeviceID.Ptr(),
		CompanyID: f.CompanyID.Ptr(),
		Status:    f.Status,
	}
}
