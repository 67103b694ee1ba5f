package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/internal/types"
	vuuid "github.com/vending-machines/backend/internal/uuid"
	"gorm.io/gorm"
)

type DeviceEditable struct {
	DeviceModelID    uuid.UUID   `json:"deviceModelId" example:"0a1c8c5f-6d1e-4a4e-9b59-3f0f0b8a2e11"`  // ID of the device model
	LocationID       uuid.UUID   `json:"locationId" example:"5b2c4a1e-7c3d-4f5e-8a9b-0c1d2e3f4a5b"`     // ID of the location the device is installed at
	CompanyID        uuid.UUID   `json:"companyId" example:"d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"`      // ID of the company operating the device
	DeviceStatusID   *uuid.UUID  `json:"deviceStatusId" example:"9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"` // ID of the current status
	ModemID          *uuid.UUID  `json:"modemId" example:"1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d"`        // ID of the attached modem
	InstallationDate types.Date  `json:"installationDate" example:"2025-01-10"`                         // Day the device was installed
	LastServiceDate  *types.Date `json:"lastServiceDate" example:"2025-03-01"`                          // Day of the last maintenance
}

// model returns the database resource for the API representation of the editable fields
func (editable DeviceEditable) model() models.Device {
	return models.Device{
		DeviceModelID:    editable.DeviceModelID,
		LocationID:       editable.LocationID,
		CompanyID:        editable.CompanyID,
		DeviceStatusID:   editable.DeviceStatusID,
		ModemID:          editable.ModemID,
		InstallationDate: editable.InstallationDate,
		LastServiceDate:  editable.LastServiceDate,
	}
}

// validate checks that all required references are set.
func (editable DeviceEditable) validate() error {
	if editable.DeviceModelID == uuid.Nil || editable.CompanyID == uuid.Nil || editable.LocationID == uuid.Nil {
		return errDeviceReferenceMissing
	}

	return nil
}

// DeviceDetails are the display values of the resources a device references.
type DeviceDetails struct {
	ModelName   string `json:"modelName" example:"Saeco Cristallo 400"` // Name of the device model
	TypeName    string `json:"typeName" example:"Кофейный автомат"`     // Name of the device type of the model
	CompanyName string `json:"companyName" example:"ООО Вендинг Плюс"`  // Name of the company
	Address     string `json:"address" example:"Москва, ул. Ленина, 1"` // Installation address
	Place       string `json:"place" example:"Первый этаж, у входа"`    // Description of the place at the address
	StatusName  string `json:"statusName" example:"Активен"`            // Name of the current status
	ModemSerial string `json:"modemSerial" example:"SN-000123"`         // Serial number of the attached modem
}

type DeviceLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/devices/3f1e2d3c-4b5a-4697-8877-66554433aa11"`                     // The device itself
	DetachModem string `json:"detachModem" example:"https://example.com/api/v1/devices/3f1e2d3c-4b5a-4697-8877-66554433aa11/detach-modem"` // Detaches the modem
	Events      string `json:"events" example:"https://example.com/api/v1/events?device=3f1e2d3c-4b5a-4697-8877-66554433aa11"`             // Events of the device
	Sales       string `json:"sales" example:"https://example.com/api/v1/sales?device=3f1e2d3c-4b5a-4697-8877-66554433aa11"`               // Sales of the device
	Bookings    string `json:"bookings" example:"https://example.com/api/v1/bookings?device=3f1e2d3c-4b5a-4697-8877-66554433aa11"`         // Bookings of the device
	Company     string `json:"company" example:"https://example.com/api/v1/companies/d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"`                // The company operating the device
}

type Device struct {
	models.DefaultModel
	DeviceEditable
	DeviceDetails
	Links DeviceLinks `json:"links"`
}

// newDevice returns the API v1 representation of the resource.
//
// The display values are only set for associations that are loaded.
func newDevice(c *gin.Context, model models.Device) Device {
	url := c.GetString(string(models.DBContextURL))

	details := DeviceDetails{
		ModelName:   model.DeviceModel.Name,
		CompanyName: model.Company.Name,
		Address:     model.Location.InstallationAddress,
		Place:       model.Location.PlaceDescription,
	}

	if model.DeviceModel.DeviceType != nil {
		details.TypeName = model.DeviceModel.DeviceType.Name
	}

	if model.DeviceStatus != nil {
		details.StatusName = model.DeviceStatus.Name
	}

	if model.Modem != nil {
		details.ModemSerial = model.Modem.SerialNumber
	}

	return Device{
		DefaultModel: model.DefaultModel,
		DeviceEditable: DeviceEditable{
			DeviceModelID:    model.DeviceModelID,
			LocationID:       model.LocationID,
			CompanyID:        model.CompanyID,
			DeviceStatusID:   model.DeviceStatusID,
			ModemID:          model.ModemID,
			InstallationDate: model.InstallationDate,
			LastServiceDate:  model.LastServiceDate,
		},
		DeviceDetails: details,
		Links: DeviceLinks{
			Self:        fmt.Sprintf("%s/v1/devices/%s", url, model.ID),
			DetachModem: fmt.Sprintf("%s/v1/devices/%s/detach-modem", url, model.ID),
			Events:      fmt.Sprintf("%s/v1/events?device=%s", url, model.ID),
			Sales:       fmt.Sprintf("%s/v1/sales?device=%s", url, model.ID),
			Bookings:    fmt.Sprintf("%s/v1/bookings?device=%s", url, model.ID),
			Company:     fmt.Sprintf("%s/v1/companies/%s", url, model.CompanyID),
		},
	}
}

// withDeviceDetails preloads all associations needed for DeviceDetails.
func withDeviceDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("DeviceModel.DeviceType").
		Preload("Location").
		Preload("Company").
		Preload("DeviceStatus").
		Preload("Modem")
}

type DeviceListResponse struct {
	Data       []Device    `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DeviceCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []DeviceResponse `json:"data"`                                                          // List of created resources
}

func (r *DeviceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, DeviceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DeviceResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Device `json:"data"`                                                          // The resource
}

type DeviceQueryFilter struct {
	DeviceModelID  vuuid.UUID `form:"deviceModel"`                // By ID of the device model
	LocationID     vuuid.UUID `form:"location"`                   // By ID of the location
	CompanyID      vuuid.UUID `form:"company"`                    // By ID of the company
	DeviceStatusID vuuid.UUID `form:"status"`                     // By ID of the status
	ModemID        vuuid.UUID `form:"modem"`                      // By ID of the modem
	Search         string     `form:"search" filterField:"false"` // By string in the model name, device type name or company name
	Offset         uint       `form:"offset" filterField:"false"` // The offset of the first device returned. Defaults to 0.
	Limit          int        `form:"limit" filterField:"false"`  // Maximum number of devices to return. Defaults to 50.
}

func (f DeviceQueryFilter) model() models.Device {
	return models.Device{
		DeviceModelID:  f.DeviceModelID.UUID,
		LocationID:     f.LocationID.UUID,
		CompanyID:      f.CompanyID.UUID,
		DeviceStatusID: f.DeviceStatusID.Ptr(),
		ModemID:        f.ModemID.Ptr(),
	}
}
