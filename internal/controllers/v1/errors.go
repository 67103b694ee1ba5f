package v1

import (
	"errors"
	"net/http"

	"github.com/vending-machines/backend/internal/auth"
	"github.com/vending-machines/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, auth.ErrTokenMissing) || errors.Is(err, auth.ErrTokenInvalid) || errors.Is(err, auth.ErrCredentialsInvalid) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errPasswordsDiffer = errors.New("the passwords do not match")
)

// Device errors
var (
	errDeviceReferenceMissing = errors.New("deviceModelId, companyId and locationId must be set")
)

// Event errors
var (
	errEventDeviceMissing = errors.New("deviceId must be set")
)

// Booking errors
var (
	errBookingDeviceMissing = errors.New("deviceId and companyId must be set")
	errDeviceAlreadyBooked  = errors.New("the device already has a confirmed booking")
)

// Monitoring errors
var (
	errDateRangeInvalid = errors.New("the end date must not be before the start date")
)
