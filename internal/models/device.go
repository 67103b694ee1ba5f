package models

import (
	"github.com/google/uuid"
	"github.com/vending-machines/backend/internal/types"
	"gorm.io/gorm"
)

// Device is a vending machine installed at a location.
type Device struct {
	DefaultModel
	DeviceModel      DeviceModel
	DeviceModelID    uuid.UUID `gorm:"type:uuid;not null"`
	Location         Location
	LocationID       uuid.UUID `gorm:"type:uuid;not null"`
	Company          Company
	CompanyID        uuid.UUID `gorm:"type:uuid;not null"`
	DeviceStatus     *DeviceStatus
	DeviceStatusID   *uuid.UUID `gorm:"type:uuid"`
	Modem            *Modem
	ModemID          *uuid.UUID `gorm:"type:uuid"`
	InstallationDate types.Date
	LastServiceDate  *types.Date
}

func (d *Device) BeforeSave(_ *gorm.DB) error {
	if d.LastServiceDate != nil && d.LastServiceDate.Time().Before(d.InstallationDate.Time()) {
		return ErrEndBeforeStart
	}

	return nil
}
