package importer

import (
	"fmt"
	"strings"

	importtypes "github.com/vending-machines/backend/internal/importer/types"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/internal/types"
	"gorm.io/gorm"
)

// Resolve looks up or creates the entities a row references and returns
// the device for it. The device is not saved.
//
// Device model, company and location are matched by exact name or address
// and created when missing. Status and modem are only linked if they exist.
func Resolve(tx *gorm.DB, row importtypes.Row) (models.Device, error) {
	date, err := types.ParseDate(strings.TrimSpace(row.InstallationDate))
	if err != nil {
		return models.Device{}, err
	}

	deviceModel, _, err := models.FindOrCreate(tx, "name", row.ModelName, func() models.DeviceModel {
		return models.DeviceModel{Name: row.ModelName}
	})
	if err != nil {
		return models.Device{}, fmt.Errorf("device model %s: %w", row.ModelName, err)
	}

	company, _, err := models.FindOrCreate(tx, "name", row.CompanyName, func() models.Company {
		return models.Company{Name: row.CompanyName}
	})
	if err != nil {
		return models.Device{}, fmt.Errorf("company %s: %w", row.CompanyName, err)
	}

	location, _, err := models.FindOrCreate(tx, "installation_address", row.Address, func() models.Location {
		return models.Location{InstallationAddress: row.Address}
	})
	if err != nil {
		return models.Device{}, fmt.Errorf("location %s: %w", row.Address, err)
	}

	device := models.Device{
		DeviceModelID:    deviceModel.ID,
		CompanyID:        company.ID,
		LocationID:       location.ID,
		InstallationDate: date,
	}

	if row.StatusName != "" {
		status, err := models.FindBy[models.DeviceStatus](tx, "name", row.StatusName)
		if err != nil {
			return models.Device{}, fmt.Errorf("device status %s: %w", row.StatusName, err)
		}

		if status != nil {
			device.DeviceStatusID = &status.ID
		}
	}

	if row.ModemSerial != "" {
		modem, err := models.FindBy[models.Modem](tx, "serial_number", row.ModemSerial)
		if err != nil {
			return models.Device{}, fmt.Errorf("modem %s: %w", row.ModemSerial, err)
		}

		if modem != nil {
			device.ModemID = &modem.ID
		}
	}

	return device, nil
}
