package v1_test

import (
	"net/http"

	v1 "github.com/vending-machines/backend/internal/controllers/v1"
	"github.com/vending-machines/backend/test"
)

func (suite *TestSuiteStandard) TestRootOptions() {
	r := test.Request(suite.T(), suite.co, http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestRootGet() {
	r := test.Request(suite.T(), suite.co, http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(v1.Links{
		Auth:         "http://example.com/v1/auth/info",
		Companies:    "http://example.com/v1/companies",
		Devices:      "http://example.com/v1/devices",
		DeviceImport: "http://example.com/v1/device-import/upload",
		Lookups:      "http://example.com/v1/lookups",
		Events:       "http://example.com/v1/events",
		Contracts:    "http://example.com/v1/contracts",
		Products:     "http://example.com/v1/products",
		Sales:        "http://example.com/v1/sales",
		Bookings:     "http://example.com/v1/bookings",
		Monitoring:   "http://example.com/v1/monitoring/network-status",
		Generate:     "http://example.com/v1/generate/money",
	}, response.Links)
}
