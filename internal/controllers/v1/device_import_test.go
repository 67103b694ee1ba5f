package v1_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	v1 "github.com/vending-machines/backend/internal/controllers/v1"
	"github.com/vending-machines/backend/internal/importer"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/test"
)

func (suite *TestSuiteStandard) TestDeviceImport() {
	body, headers := test.LoadTestFile(suite.T(), "importer/devices/two-devices.csv")

	r := suite.request(suite.T(), http.MethodPost, "http://example.com/v1/device-import/upload", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result importer.Result
	test.DecodeResponse(suite.T(), &r, &result)
	suite.Assert().True(result.Success)
	suite.Assert().Equal(2, result.ImportedCount)
	suite.Require().NotNil(result.Message)
	suite.Assert().Equal("Successfully imported 2 devices", *result.Message)
	suite.Assert().Empty(result.Errors)

	// The imported devices are available with their details
	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/devices?search=acme", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var devices v1.DeviceListResponse
	test.DecodeResponse(suite.T(), &r, &devices)
	suite.Require().Len(devices.Data, 2)
	suite.Assert().Equal("CM1", devices.Data[0].ModelName)
	suite.Assert().Equal("Lenina 1", devices.Data[0].Address)
	suite.Assert().Equal(devices.Data[0].DeviceModelID, devices.Data[1].DeviceModelID, "The device model must only be created once")

	var companies int64
	suite.Require().Nil(suite.db.Model(&models.Company{}).Count(&companies).Error)
	suite.Assert().Equal(int64(1), companies)
}

func (suite *TestSuiteStandard) TestDeviceImportFails() {
	tests := []struct {
		name     string
		file     string // File in the testdata directory
		filename string // Name and content of an inline file, used if file is empty
		content  string
		err      string // Prefix of the first error
	}{
		{"Missing column", "importer/devices/missing-column.csv", "", "", "could not read the file"},
		{"Empty record", "importer/devices/messy.csv", "", "", "Row 3: model name is required"},
		{"Empty file", "importer/devices/empty.csv", "", "", "no file was uploaded"},
		{"Unsupported type", "", "devices.txt", "ModelName\nCM1\n", "only .xlsx and .csv files are supported"},
		{"Broken spreadsheet", "", "devices.xlsx", "not a spreadsheet", "could not read the file"},
		{"Required values missing", "", "devices.csv", "ModelName,CompanyName,Address,InstallationDate\nCM1,,Lenina 1,2025-01-10\n", "Row 2: company name is required"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.MultipartFile(t, tt.filename, strings.NewReader(tt.content))
			if tt.file != "" {
				body, headers = test.LoadTestFile(t, tt.file)
			}

			recorder := suite.request(t, http.MethodPost, "http://example.com/v1/device-import/upload", body, headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var result importer.Result
			test.DecodeResponse(t, &recorder, &result)
			assert.False(t, result.Success)
			assert.Equal(t, 0, result.ImportedCount)
			assert.Nil(t, result.Message)
			assert.NotEmpty(t, result.Errors)
			assert.True(t, strings.HasPrefix(result.Errors[0], tt.err), result.Errors[0])
		})
	}

	var devices int64
	suite.Require().Nil(suite.db.Model(&models.Device{}).Count(&devices).Error)
	suite.Assert().Equal(int64(0), devices, "No device must be imported from an invalid file")
}

func (suite *TestSuiteStandard) TestDeviceImportNoFile() {
	tests := []struct {
		name    string
		body    func(t *testing.T) (any, map[string]string)
		message string
	}{
		{
			"Form without file",
			func(t *testing.T) (any, map[string]string) {
				body, headers := test.MultipartForm(t)
				return body, headers
			},
			importer.ErrNoFile.Error(),
		},
		{
			"Not a multipart request",
			func(_ *testing.T) (any, map[string]string) {
				return `{"file": "devices.csv"}`, map[string]string{"Content-Type": "application/json"}
			},
			importer.ErrNoFile.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := tt.body(t)
			r := suite.request(t, http.MethodPost, "http://example.com/v1/device-import/upload", body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var result importer.Result
			test.DecodeResponse(t, &r, &result)
			assert.False(t, result.Success)
			assert.Equal(t, []string{tt.message}, result.Errors)
		})
	}
}

func (suite *TestSuiteStandard) TestDeviceImportOptions() {
	r := suite.request(suite.T(), http.MethodOptions, "http://example.com/v1/device-import/upload", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
}
