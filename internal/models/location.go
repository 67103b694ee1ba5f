package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location is the place a device is installed at.
type Location struct {
	DefaultModel
	InstallationAddress string
	PlaceDescription    string
}

func (l *Location) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("installation address", &l.InstallationAddress, 255); err != nil {
		return err
	}

	if l.InstallationAddress == "" {
		return ErrAddressRequired
	}

	return checkLength("place description", &l.PlaceDescription, 50)
}

// Modem is the telemetry modem that can be attached to a device.
type Modem struct {
	DefaultModel
	Brand        string
	SerialNumber string `gorm:"uniqueIndex"`
	Provider     string
	Balance      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (m *Modem) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("serial number", &m.SerialNumber, 15); err != nil {
		return err
	}

	if err := checkLength("brand", &m.Brand, 50); err != nil {
		return err
	}

	return checkLength("provider", &m.Provider, 50)
}
