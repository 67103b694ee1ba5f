// Package types contains the structures shared by the device import parsers
// and the importer.
package types

import (
	"fmt"
)

// Row is one data row of an uploaded device list. All values are trimmed.
type Row struct {
	Row              int    // Physical row number in the file. The header is row 1.
	ModelName        string // Name of the device model
	CompanyName      string // Name of the owning company
	Address          string // Installation address
	InstallationDate string // Installation date, expected as YYYY-MM-DD
	StatusName       string // Optional device status name
	ModemSerial      string // Optional modem serial number
}

// Empty reports if none of the fields of the row are set.
func (r Row) Empty() bool {
	return r.ModelName == "" && r.CompanyName == "" && r.Address == "" && r.InstallationDate == "" && r.StatusName == "" && r.ModemSerial == ""
}

// RowError is an error that affects a single row of the file.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
