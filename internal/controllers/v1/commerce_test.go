package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/vending-machines/backend/internal/controllers/v1"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/internal/types"
	"github.com/vending-machines/backend/test"
)

func (suite *TestSuiteStandard) TestContracts() {
	acme := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Acme"})
	beta := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Beta"})

	suite.create(&models.Contract{CompanyID: &acme.Data.ID, ContractNumber: "C-1", SigningDate: types.NewDate(2024, 1, 15), Status: "closed"})
	suite.create(&models.Contract{CompanyID: &acme.Data.ID, ContractNumber: "C-2", SigningDate: types.NewDate(2025, 1, 15), Status: "active"})
	suite.create(&models.Contract{CompanyID: &beta.Data.ID, ContractNumber: "C-3", SigningDate: types.NewDate(2025, 2, 1), Status: "active"})

	tests := []struct {
		name    string
		query   string
		numbers []string
	}{
		{"All", "", []string{"C-3", "C-2", "C-1"}},
		{"Company", fmt.Sprintf("company=%s", acme.Data.ID), []string{"C-2", "C-1"}},
		{"Status", "status=active", []string{"C-3", "C-2"}},
		{"Company and status", fmt.Sprintf("company=%s&status=closed", acme.Data.ID), []string{"C-1"}},
		{"Limit", "limit=1", []string{"C-3"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/contracts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ContractListResponse
			test.DecodeResponse(t, &r, &response)

			numbers := make([]string, 0, len(response.Data))
			for _, c := range response.Data {
				numbers = append(numbers, c.ContractNumber)
			}
			assert.Equal(t, tt.numbers, numbers)
		})
	}

	// The contract link of a company lists its contracts
	r := suite.request(suite.T(), http.MethodGet, acme.Data.Links.Contracts, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ContractListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
	suite.Assert().Equal(int64(2), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestProducts() {
	_ = suite.createTestProduct("Espresso", 90)
	_ = suite.createTestProduct("Cappuccino", 120)
	_ = suite.createTestProduct("Chips", 70)

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"All", "", []string{"Cappuccino", "Chips", "Espresso"}},
		{"Name", "name=ESS", []string{"Espresso"}},
		{"Name prefix", "name=c", []string{"Cappuccino", "Chips"}},
		{"Offset", "offset=2", []string{"Espresso"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/products?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ProductListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0, len(response.Data))
			for _, p := range response.Data {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}

	var response v1.ProductListResponse
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/products?name=cappuccino", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().True(decimal.NewFromInt(120).Equal(response.Data[0].Price), response.Data[0].Price.String())
}

func (suite *TestSuiteStandard) TestSales() {
	first := suite.createTestDevice(suite.T(), v1.DeviceEditable{})
	second := suite.createTestDevice(suite.T(), v1.DeviceEditable{})
	espresso := suite.createTestProduct("Espresso", 90)
	cappuccino := suite.createTestProduct("Cappuccino", 120)
	card := models.PaymentMethod{Name: "Card"}
	suite.create(&card)

	suite.create(&models.Sale{DeviceID: &first.Data.ID, ProductID: &espresso.ID, PaymentMethodID: &card.ID, SaleDateTime: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)})
	suite.create(&models.Sale{DeviceID: &first.Data.ID, ProductID: &cappuccino.ID, SaleDateTime: time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)})
	suite.create(&models.Sale{DeviceID: &second.Data.ID, ProductID: &cappuccino.ID, SaleDateTime: time.Date(2025, 4, 3, 8, 0, 0, 0, time.UTC)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Device", fmt.Sprintf("device=%s", first.Data.ID), 2},
		{"Product", fmt.Sprintf("product=%s", cappuccino.ID), 2},
		{"Payment method", fmt.Sprintf("paymentMethod=%s", card.ID), 1},
		{"Device and product", fmt.Sprintf("device=%s&product=%s", second.Data.ID, espresso.ID), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/sales?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SaleListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}

	// The sales link of a device lists its sales, newest first
	r := suite.request(suite.T(), http.MethodGet, first.Data.Links.Sales, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SaleListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Cappuccino", response.Data[0].ProductName)
	suite.Assert().True(decimal.NewFromInt(120).Equal(response.Data[0].Amount), "The amount of a sale is the price of its product")
	suite.Assert().Equal("Espresso", response.Data[1].ProductName)
	suite.Assert().True(decimal.NewFromInt(90).Equal(response.Data[1].Amount))
}

func (suite *TestSuiteStandard) TestBookings() {
	device := suite.createTestDevice(suite.T(), v1.DeviceEditable{})
	other := suite.createTestDevice(suite.T(), v1.DeviceEditable{})
	company := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Renter"})

	booking := func(deviceID *uuid.UUID, status string) v1.BookingEditable {
		return v1.BookingEditable{
			DeviceID:      deviceID,
			CompanyID:     &company.Data.ID,
			StartDate:     types.NewDate(2025, 5, 1),
			OwnershipType: "rent",
			MonthlyCost:   decimal.NewFromInt(15000),
			Status:        status,
		}
	}

	tests := []struct {
		name     string
		body     []v1.BookingEditable
		status   int
		errorMsg string
	}{
		{"Pending booking", []v1.BookingEditable{booking(&device.Data.ID, "pending")}, http.StatusCreated, ""},
		{"Confirmed booking", []v1.BookingEditable{booking(&device.Data.ID, "confirmed")}, http.StatusCreated, ""},
		{"Second confirmed booking", []v1.BookingEditable{booking(&device.Data.ID, "confirmed")}, http.StatusBadRequest, "the device already has a confirmed booking"},
		{"Pending booking of a confirmed device", []v1.BookingEditable{booking(&device.Data.ID, "pending")}, http.StatusBadRequest, "the device already has a confirmed booking"},
		{"Device missing", []v1.BookingEditable{booking(nil, "pending")}, http.StatusBadRequest, "deviceId and companyId must be set"},
		{"Ownership type missing", []v1.BookingEditable{func() v1.BookingEditable { b := booking(&other.Data.ID, "pending"); b.OwnershipType = ""; return b }()}, http.StatusBadRequest, models.ErrOwnershipTypeRequired.Error()},
		{"Negative cost", []v1.BookingEditable{func() v1.BookingEditable { b := booking(&other.Data.ID, "pending"); b.MonthlyCost = decimal.NewFromInt(-1); return b }()}, http.StatusBadRequest, models.ErrAmountNegative.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/bookings", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BookingCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, 1)

			if tt.errorMsg == "" {
				assert.Equal(t, fmt.Sprintf("http://example.com/v1/devices/%s", device.Data.ID), response.Data[0].Data.Links.Device)
				assert.True(t, decimal.NewFromInt(15000).Equal(response.Data[0].Data.MonthlyCost))
				return
			}

			assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
		})
	}

	r := suite.request(suite.T(), http.MethodGet, device.Data.Links.Bookings, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BookingListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/bookings?status=confirmed", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 1)

	r = suite.request(suite.T(), http.MethodOptions, "http://example.com/v1/bookings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCommerceOptions() {
	for _, path := range []string{"contracts", "products", "sales"} {
		r := suite.request(suite.T(), http.MethodOptions, "http://example.com/v1/"+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"), path)
	}
}
