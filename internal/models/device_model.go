package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceType groups device models, e.g. coffee or snack machines.
type DeviceType struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex"`
	Description string
}

func (t *DeviceType) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("name", &t.Name, 50); err != nil {
		return err
	}

	if t.Name == "" {
		return ErrNameRequired
	}

	return nil
}

// DeviceModel is the hardware model of a vending machine.
type DeviceModel struct {
	DefaultModel
	Name         string
	DeviceType   *DeviceType
	DeviceTypeID *uuid.UUID `gorm:"type:uuid"`
	Description  string
}

func (m *DeviceModel) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("device model name", &m.Name, 50); err != nil {
		return err
	}

	if m.Name == "" {
		return ErrNameRequired
	}

	return nil
}

// DeviceStatus is the operational state of a device, e.g. "Активен".
type DeviceStatus struct {
	DefaultModel
	Name      string `gorm:"uniqueIndex"`
	ColorCode string
}

func (s *DeviceStatus) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("status name", &s.Name, 20); err != nil {
		return err
	}

	if s.Name == "" {
		return ErrNameRequired
	}

	return checkLength("color code", &s.ColorCode, 7)
}
