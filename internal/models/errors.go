package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceInvalid = errors.New("a resource referenced in your request does not exist")
)

// Unique constraint violations
var (
	ErrDeviceTypeNameNotUnique    = errors.New("the device type name must be unique")
	ErrDeviceStatusNameNotUnique  = errors.New("the device status name must be unique")
	ErrModemSerialNotUnique       = errors.New("the modem serial number must be unique")
	ErrUserEmailNotUnique         = errors.New("a user with this email address already exists")
	ErrRoleNameNotUnique          = errors.New("the role name must be unique")
	ErrContractNumberNotUnique    = errors.New("the contract number must be unique")
	ErrPaymentMethodNameNotUnique = errors.New("the payment method name must be unique")
	ErrInventoryNotUnique         = errors.New("there already is an inventory entry for this product on this device")
)

var (
	ErrNameRequired          = errors.New("the name must be set")
	ErrAddressRequired       = errors.New("the installation address must be set")
	ErrEventTypeRequired     = errors.New("the event type must be set")
	ErrOwnershipTypeRequired = errors.New("the ownership type must be set")
	ErrAmountNegative        = errors.New("amounts must not be negative")
	ErrEndBeforeStart        = errors.New("the end date must not be before the start date")
	ErrLanguageInvalid       = errors.New("the language must be a valid BCP 47 language tag, e.g. ru or en-US")
)

// ErrTooLong is returned when a string value exceeds the column length.
type ErrTooLong struct {
	Field string
	Max   int
}

func (e ErrTooLong) Error() string {
	return fmt.Sprintf("%s must be at most %d characters long", e.Field, e.Max)
}
