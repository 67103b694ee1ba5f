package models

import (
	"gorm.io/gorm"
)

// Company is a customer operating vending machines.
type Company struct {
	DefaultModel
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
}

func (c *Company) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("name", &c.Name, 255); err != nil {
		return err
	}

	if c.Name == "" {
		return ErrNameRequired
	}

	if err := checkLength("contact email", &c.ContactEmail, 255); err != nil {
		return err
	}

	return checkLength("contact phone", &c.ContactPhone, 18)
}
