package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vending-machines/backend/internal/models"
	vuuid "github.com/vending-machines/backend/internal/uuid"
)

type EventEditable struct {
	DeviceID    *uuid.UUID `json:"deviceId" example:"3f1e2d3c-4b5a-4697-8877-66554433aa11"` // ID of the device the event happened on
	EventType   string     `json:"eventType" example:"Ошибка"`                              // Type of the event
	Description string     `json:"description" example:"Замятие купюры"`                    // Description of the event
	DateTime    time.Time  `json:"dateTime" example:"2025-04-02T19:28:44Z"`                 // Time the event happened
	MediaPath   string     `json:"mediaPath" example:"https://example.com/photos/42.jpg"`   // Path or URL of a photo of the event
}

// model returns the database resource for the API representation of the editable fields
func (editable EventEditable) model() models.Event {
	return models.Event{
		DeviceID:    editable.DeviceID,
		EventType:   editable.EventType,
		Description: editable.Description,
		DateTime:    editable.DateTime,
		MediaPath:   editable.MediaPath,
	}
}

type EventLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/events/8a7b6c5d-4e3f-4a1b-9c8d-7e6f5a4b3c2d"`    // The event itself
	Device string `json:"device" example:"https://example.com/api/v1/devices/3f1e2d3c-4b5a-4697-8877-66554433aa11"` // The device the event happened on
}

type Event struct {
	models.DefaultModel
	EventEditable
	Links EventLinks `json:"links"`
}

// newEvent returns the API v1 representation of the resource
func newEvent(c *gin.Context, model models.Event) Event {
	url := c.GetString(string(models.DBContextURL))

	var device string
	if model.DeviceID != nil {
		device = fmt.Sprintf("%s/v1/devices/%s", url, model.DeviceID)
	}

	return Event{
		DefaultModel: model.DefaultModel,
		EventEditable: EventEditable{
			DeviceID:    model.DeviceID,
			EventType:   model.EventType,
			Description: model.Description,
			DateTime:    model.DateTime,
			MediaPath:   model.MediaPath,
		},
		Links: EventLinks{
			Self:   fmt.Sprintf("%s/v1/events/%s", url, model.ID),
			Device: device,
		},
	}
}

type EventListResponse struct {
	Data       []Event     `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EventCreateResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []EventResponse `json:"data"`                                                          // List of created resources
}

func (r *EventCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, EventResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EventResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Event  `json:"data"`                                                          // The resource
}

type EventQueryFilter struct {
	DeviceID  vuuid.UUID `form:"device"`                        // By ID of the device
	EventType string     `form:"eventType"`                     // By exact event type
	Search    string     `form:"search" filterField:"false"`    // By string in the description
	FromDate  time.Time  `form:"fromDate" filterField:"false"`  // Events at or after this time
	UntilDate time.Time  `form:"untilDate" filterField:"false"` // Events before this time
	Offset    uint       `form:"offset" filterField:"false"`    // The offset of the first event returned. Defaults to 0.
	Limit     int        `form:"limit" filterField:"false"`     // Maximum number of events to return. Defaults to 50.
}

func (f EventQueryFilter) model() models.Event {
	return models.Event{
		DeviceID:  f.DeviceID.Ptr(),
		EventType: f.EventType,
	}
}
