// Package types implements special types for the vending backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"
)

// DateLayout is the only accepted textual representation of a Date.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("dates must be in the format YYYY-MM-DD")

// Date is a calendar day without a time of day.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which t occurs in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a strict "YYYY-MM-DD" string.
//
// Impossible calendar dates like 2025-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, ErrInvalidDate
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// Time returns the start of the day in UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the Date n days later. n can be negative.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler so that
// dates can be used in query parameters.
func (d *Date) UnmarshalParam(p string) error {
	if p == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(p)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Scan writes the value from the database.
func (d *Date) Scan(value any) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DateOf(nullTime.Time.In(time.UTC))
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	return time.Time(DateOf(time.Time(d))), nil
}

// GormDataType defines the data type used by gorm the type.
func (Date) GormDataType() string {
	return "date"
}
