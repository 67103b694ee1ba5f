package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vending-machines/backend/internal/importer/types"
)

// ErrMissingColumn is returned when a required column is not in the header.
type ErrMissingColumn struct {
	Column string
}

func (e ErrMissingColumn) Error() string {
	return fmt.Sprintf("the header does not contain the required column %s", e.Column)
}

// column positions in the record. -1 means the column does not exist.
type columns struct {
	modelName        int
	companyName      int
	address          int
	installationDate int
	statusName       int
	modemSerial      int
}

// headerNames maps normalized header names to the column they fill.
var headerNames = map[string]func(*columns, int){
	"modelname":           func(c *columns, i int) { c.modelName = i },
	"companyname":         func(c *columns, i int) { c.companyName = i },
	"address":             func(c *columns, i int) { c.address = i },
	"installationdate":    func(c *columns, i int) { c.installationDate = i },
	"installationdatestr": func(c *columns, i int) { c.installationDate = i },
	"statusname":          func(c *columns, i int) { c.statusName = i },
	"modemserial":         func(c *columns, i int) { c.modemSerial = i },
}

// Parse parses a CSV device list. The first line is the header and
// columns are matched by name, case-insensitively.
//
// Rows are numbered by record, the header is row 1. Blank lines are not
// records. A record with only empty fields is still returned.
//
// Records that cannot be read are returned as RowError, all other
// failures abort parsing with an error.
func Parse(f io.Reader) ([]types.Row, []types.RowError, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []types.Row{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not read the header of the CSV: %w", err)
	}

	cols, err := parseHeader(header)
	if err != nil {
		return nil, nil, err
	}

	rows := []types.Row{}
	var rowErrors []types.RowError

	number := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		number++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rowErrors = append(rowErrors, types.RowError{Row: number, Err: fmt.Errorf("invalid data: %w", parseErr.Err)})
			continue
		}

		if err != nil {
			return nil, nil, fmt.Errorf("could not read line in CSV: %w", err)
		}

		row := types.Row{
			Row:              number,
			ModelName:        field(record, cols.modelName),
			CompanyName:      field(record, cols.companyName),
			Address:          field(record, cols.address),
			InstallationDate: field(record, cols.installationDate),
			StatusName:       field(record, cols.statusName),
			ModemSerial:      field(record, cols.modemSerial),
		}

		rows = append(rows, row)
	}

	return rows, rowErrors, nil
}

func parseHeader(header []string) (columns, error) {
	cols := columns{-1, -1, -1, -1, -1, -1}

	for i, name := range header {
		if fill, ok := headerNames[normalize(name)]; ok {
			fill(&cols, i)
		}
	}

	for _, required := range []struct {
		name string
		pos  int
	}{
		{"ModelName", cols.modelName},
		{"CompanyName", cols.companyName},
		{"Address", cols.address},
		{"InstallationDate", cols.installationDate},
	} {
		if required.pos == -1 {
			return columns{}, ErrMissingColumn{Column: required.name}
		}
	}

	return cols, nil
}

// normalize lowercases a header name and removes the byte order mark
// and separator characters.
func normalize(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")

	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}
