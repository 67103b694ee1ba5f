package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	v1 "github.com/vending-machines/backend/internal/controllers/v1"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/internal/types"
	"github.com/vending-machines/backend/test"
)

func (suite *TestSuiteStandard) TestDevicesCreate() {
	model := suite.createTestDeviceModel("Saeco Cristallo 400", "Coffee machine")
	company := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Acme"})
	location := models.Location{InstallationAddress: "Lenina 1", PlaceDescription: "Entrance"}
	suite.create(&location)
	deviceStatus := models.DeviceStatus{Name: "Активен"}
	suite.create(&deviceStatus)
	modem := models.Modem{SerialNumber: "SN-000123"}
	suite.create(&modem)

	device := suite.createTestDevice(suite.T(), v1.DeviceEditable{
		DeviceModelID:  model.ID,
		CompanyID:      company.Data.ID,
		LocationID:     location.ID,
		DeviceStatusID: &deviceStatus.ID,
		ModemID:        &modem.ID,
	})

	suite.Assert().Equal("Saeco Cristallo 400", device.Data.ModelName)
	suite.Assert().Equal("Coffee machine", device.Data.TypeName)
	suite.Assert().Equal("Acme", device.Data.CompanyName)
	suite.Assert().Equal("Lenina 1", device.Data.Address)
	suite.Assert().Equal("Entrance", device.Data.Place)
	suite.Assert().Equal("Активен", device.Data.StatusName)
	suite.Assert().Equal("SN-000123", device.Data.ModemSerial)
	suite.Assert().Equal(types.NewDate(2025, 1, 10), device.Data.InstallationDate)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/devices/%s/detach-modem", device.Data.ID), device.Data.Links.DetachModem)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/companies/%s", company.Data.ID), device.Data.Links.Company)
}

func (suite *TestSuiteStandard) TestDevicesCreateFails() {
	company := suite.createTestCompany(suite.T(), v1.CompanyEditable{})
	model := suite.createTestDeviceModel("CM1", "")
	location := models.Location{InstallationAddress: "Lenina 1"}
	suite.create(&location)

	installed := types.NewDate(2025, 3, 1)
	serviced := types.NewDate(2025, 2, 1)

	tests := []struct {
		name     string
		body     any
		status   int
		errorMsg string
	}{
		{
			"References missing",
			[]v1.DeviceEditable{{DeviceModelID: model.ID, LocationID: location.ID}},
			http.StatusBadRequest,
			"deviceModelId, companyId and locationId must be set",
		},
		{
			"Non-existing model",
			[]v1.DeviceEditable{{DeviceModelID: uuid.New(), CompanyID: company.Data.ID, LocationID: location.ID}},
			http.StatusBadRequest,
			models.ErrReferenceInvalid.Error(),
		},
		{
			"Serviced before installation",
			[]v1.DeviceEditable{{DeviceModelID: model.ID, CompanyID: company.Data.ID, LocationID: location.ID, InstallationDate: installed, LastServiceDate: &serviced}},
			http.StatusBadRequest,
			models.ErrEndBeforeStart.Error(),
		},
		{
			"Broken body",
			`[{ "installationDate": "yesterday" }]`,
			http.StatusBadRequest,
			"",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/devices", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.errorMsg == "" {
				return
			}

			var response v1.DeviceCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestDevicesGetFilter() {
	coffee := suite.createTestDeviceModel("Saeco Cristallo", "Coffee machine")
	snacks := suite.createTestDeviceModel("Unicum Foodbox", "Snack machine")
	untyped := suite.createTestDeviceModel("Prototype", "")

	acme := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Acme Vending"})
	beta := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Beta Foods"})

	_ = suite.createTestDevice(suite.T(), v1.DeviceEditable{DeviceModelID: coffee.ID, CompanyID: acme.Data.ID, InstallationDate: types.NewDate(2025, 1, 1)})
	_ = suite.createTestDevice(suite.T(), v1.DeviceEditable{DeviceModelID: snacks.ID, CompanyID: acme.Data.ID, InstallationDate: types.NewDate(2025, 1, 2)})
	_ = suite.createTestDevice(suite.T(), v1.DeviceEditable{DeviceModelID: untyped.ID, CompanyID: beta.Data.ID, InstallationDate: types.NewDate(2025, 1, 3)})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 3, 3},
		{"Company", fmt.Sprintf("company=%s", acme.Data.ID), 2, 2},
		{"Device model", fmt.Sprintf("deviceModel=%s", untyped.ID), 1, 1},
		{"Search by model", "search=cristallo", 1, 1},
		{"Search by type", "search=COFFEE", 1, 1},
		{"Search by company", "search=beta", 1, 1},
		{"Search matching all", "search=o", 3, 3},
		{"Search without match", "search=tea", 0, 0},
		{"Search and company", fmt.Sprintf("search=machine&company=%s", acme.Data.ID), 2, 2},
		{"Limit", "limit=1", 1, 3},
		{"Offset", "offset=1&limit=1", 1, 3},
		{"Non-existing company", fmt.Sprintf("company=%s", uuid.New()), 0, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.DeviceListResponse
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/devices?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}

	var response v1.DeviceListResponse
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/devices?offset=1&limit=1", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Unicum Foodbox", response.Data[0].ModelName, "Devices must be sorted by installation date")
	suite.Assert().Equal("Snack machine", response.Data[0].TypeName)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/devices?company=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDevicesGetSingle() {
	d := suite.createTestDevice(suite.T(), v1.DeviceEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Device", d.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Device with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"OPTIONS Existing Device", d.Data.ID.String(), http.StatusNoContent, http.MethodOptions},
		{"OPTIONS No Device with this ID", uuid.New().String(), http.StatusNotFound, http.MethodOptions},
		{"PATCH No Device with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE Invalid ID", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, tt.method, fmt.Sprintf("http://example.com/v1/devices/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestDevicesUpdate() {
	d := suite.createTestDevice(suite.T(), v1.DeviceEditable{})
	other := suite.createTestCompany(suite.T(), v1.CompanyEditable{Name: "Other"})

	r := suite.request(suite.T(), http.MethodPatch, d.Data.Links.Self, map[string]any{
		"companyId":       other.Data.ID,
		"lastServiceDate": "2025-03-01",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.DeviceResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(other.Data.ID, updated.Data.CompanyID)
	suite.Assert().Equal("Other", updated.Data.CompanyName)
	suite.Require().NotNil(updated.Data.LastServiceDate)
	suite.Assert().Equal(types.NewDate(2025, 3, 1), *updated.Data.LastServiceDate)
	suite.Assert().Equal(d.Data.DeviceModelID, updated.Data.DeviceModelID, "Fields not in the body must not be changed")

	r = suite.request(suite.T(), http.MethodPatch, d.Data.Links.Self, map[string]any{
		"companyId": uuid.New(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDevicesDetachModem() {
	modem := models.Modem{SerialNumber: "SN-1"}
	suite.create(&modem)
	d := suite.createTestDevice(suite.T(), v1.DeviceEditable{ModemID: &modem.ID})
	suite.Require().NotNil(d.Data.ModemID)

	r := suite.request(suite.T(), http.MethodOptions, d.Data.Links.DetachModem, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, PATCH", r.Header().Get("allow"))

	r = suite.request(suite.T(), http.MethodPatch, d.Data.Links.DetachModem, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var detached v1.DeviceResponse
	test.DecodeResponse(suite.T(), &r, &detached)
	suite.Assert().Nil(detached.Data.ModemID)
	suite.Assert().Equal("", detached.Data.ModemSerial)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Modem{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count, "The modem must be kept")

	r = suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/devices/%s/detach-modem", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDevicesDelete() {
	d := suite.createTestDevice(suite.T(), v1.DeviceEditable{})

	r := suite.request(suite.T(), http.MethodDelete, d.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, d.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDevicesDBClosed() {
	suite.CloseDB()

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/devices", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
