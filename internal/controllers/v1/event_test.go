package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	v1 "github.com/vending-machines/backend/internal/controllers/v1"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/test"
)

func (suite *TestSuiteStandard) TestEventsCreate() {
	device := suite.createTestDevice(suite.T(), v1.DeviceEditable{})

	tests := []struct {
		name     string
		body     any
		status   int
		errorMsg string
	}{
		{"Valid", []v1.EventEditable{{DeviceID: &device.Data.ID, EventType: "door", Description: "Door opened"}}, http.StatusCreated, ""},
		{"Device missing", []v1.EventEditable{{EventType: "door"}}, http.StatusBadRequest, "deviceId must be set"},
		{"Event type missing", []v1.EventEditable{{DeviceID: &device.Data.ID}}, http.StatusBadRequest, models.ErrEventTypeRequired.Error()},
		{"Non-existing device", []v1.EventEditable{{DeviceID: func() *uuid.UUID { id := uuid.New(); return &id }(), EventType: "door"}}, http.StatusBadRequest, models.ErrReferenceInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/events", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.EventCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.errorMsg == "" {
				assert.Equal(t, fmt.Sprintf("http://example.com/v1/devices/%s", device.Data.ID), response.Data[0].Data.Links.Device)
				return
			}

			assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestEventsGetFilter() {
	first := suite.createTestDevice(suite.T(), v1.DeviceEditable{})
	second := suite.createTestDevice(suite.T(), v1.DeviceEditable{})

	_ = suite.createTestEvent(suite.T(), v1.EventEditable{DeviceID: &first.Data.ID, EventType: "door", Description: "Door opened", DateTime: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)})
	_ = suite.createTestEvent(suite.T(), v1.EventEditable{DeviceID: &first.Data.ID, EventType: "error", Description: "Bill jam", DateTime: time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)})
	_ = suite.createTestEvent(suite.T(), v1.EventEditable{DeviceID: &second.Data.ID, EventType: "door", Description: "Door closed", DateTime: time.Date(2025, 4, 3, 8, 0, 0, 0, time.UTC)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Device", fmt.Sprintf("device=%s", first.Data.ID), 2},
		{"Event type", "eventType=door", 2},
		{"Search", "search=DOOR", 2},
		{"From", "fromDate=2025-04-02T00:00:00Z", 2},
		{"Until", "untilDate=2025-04-02T00:00:00Z", 1},
		{"Range", "fromDate=2025-04-02T00:00:00Z&untilDate=2025-04-03T00:00:00Z", 1},
		{"Device and type", fmt.Sprintf("device=%s&eventType=door", second.Data.ID), 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.EventListResponse
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/events?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, int64(tt.len), response.Pagination.Total)
		})
	}

	var response v1.EventListResponse
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/events", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Door closed", response.Data[0].Description, "Events must be sorted newest first")

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/events?fromDate=yesterday", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestEventsSingle() {
	e := suite.createTestEvent(suite.T(), v1.EventEditable{Description: "Door opened"})

	r := suite.request(suite.T(), http.MethodOptions, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = suite.request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{"description": "Door closed"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.EventResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Door closed", updated.Data.Description)
	suite.Assert().Equal("door", updated.Data.EventType)

	r = suite.request(suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/events/notaUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
