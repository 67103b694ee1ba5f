package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vending-machines/backend/internal/types"
	"gorm.io/gorm"
)

type Contract struct {
	DefaultModel
	Company        *Company
	CompanyID      *uuid.UUID `gorm:"type:uuid"`
	ContractNumber string     `gorm:"uniqueIndex"`
	SigningDate    types.Date
	EndDate        *types.Date
	Status         string
}

func (c *Contract) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("contract number", &c.ContractNumber, 50); err != nil {
		return err
	}

	if c.EndDate != nil && c.EndDate.Time().Before(c.SigningDate.Time()) {
		return ErrEndBeforeStart
	}

	return checkLength("status", &c.Status, 50)
}

type Product struct {
	DefaultModel
	Name        string
	Description string
	Price       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (p *Product) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("product name", &p.Name, 100); err != nil {
		return err
	}

	if p.Name == "" {
		return ErrNameRequired
	}

	if p.Price.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

type PaymentMethod struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
}

func (m *PaymentMethod) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("payment method name", &m.Name, 50); err != nil {
		return err
	}

	if m.Name == "" {
		return ErrNameRequired
	}

	return nil
}

// Sale is a single product sold by a device.
type Sale struct {
	DefaultModel
	Device          *Device
	DeviceID        *uuid.UUID `gorm:"type:uuid"`
	Product         *Product
	ProductID       *uuid.UUID `gorm:"type:uuid"`
	SaleDateTime    time.Time
	PaymentMethod   *PaymentMethod
	PaymentMethodID *uuid.UUID `gorm:"type:uuid"`
}

// Inventory is the stock of one product in one device.
type Inventory struct {
	DefaultModel
	Device       *Device
	DeviceID     *uuid.UUID `gorm:"type:uuid;uniqueIndex:inventory_device_product"`
	Product      *Product
	ProductID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:inventory_device_product"`
	Quantity     int
	MinimumStock int
}

func (i *Inventory) BeforeSave(_ *gorm.DB) error {
	if i.Quantity < 0 || i.MinimumStock < 0 {
		return ErrAmountNegative
	}

	return nil
}

// Event is something that happened on a device, e.g. a door opening or an error.
type Event struct {
	DefaultModel
	Device      *Device
	DeviceID    *uuid.UUID `gorm:"type:uuid"`
	EventType   string
	Description string
	DateTime    time.Time
	MediaPath   string
}

func (e *Event) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("event type", &e.EventType, 50); err != nil {
		return err
	}

	if e.EventType == "" {
		return ErrEventTypeRequired
	}

	return checkLength("media path", &e.MediaPath, 255)
}

// Booking is the rental or purchase of a device by a company.
type Booking struct {
	DefaultModel
	Device        *Device
	DeviceID      *uuid.UUID `gorm:"type:uuid"`
	Company       *Company
	CompanyID     *uuid.UUID `gorm:"type:uuid"`
	StartDate     types.Date
	EndDate       *types.Date
	OwnershipType string
	Insurance     bool
	MonthlyCost   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AnnualCost    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaybackPeriod int
	Status        string
}

func (b *Booking) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("ownership type", &b.OwnershipType, 50); err != nil {
		return err
	}

	if b.OwnershipType == "" {
		return ErrOwnershipTypeRequired
	}

	if b.MonthlyCost.IsNegative() || b.AnnualCost.IsNegative() || b.PaybackPeriod < 0 {
		return ErrAmountNegative
	}

	if b.EndDate != nil && b.EndDate.Time().Before(b.StartDate.Time()) {
		return ErrEndBeforeStart
	}

	return checkLength("status", &b.Status, 50)
}

// Service is a maintenance visit on a device.
type Service struct {
	DefaultModel
	Device          *Device
	DeviceID        *uuid.UUID `gorm:"type:uuid"`
	ServiceDate     types.Date
	WorkDescription string
	Issues          string
	User            *User
	UserID          *uuid.UUID `gorm:"type:uuid"`
}
