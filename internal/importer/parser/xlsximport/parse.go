package xlsximport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	importtypes "github.com/vending-machines/backend/internal/importer/types"
	"github.com/vending-machines/backend/internal/types"
	"github.com/xuri/excelize/v2"
)

// Column positions on the worksheet, the order is fixed.
const (
	ModelName = iota
	CompanyName
	Address
	InstallationDate
	StatusName
	ModemSerial
)

// Parse parses the first worksheet of an XLSX device list.
//
// The first row is the header and is skipped. Columns are read in
// the fixed order ModelName, CompanyName, Address, InstallationDate,
// StatusName, ModemSerial.
func Parse(f io.Reader) ([]importtypes.Row, []importtypes.RowError, error) {
	workbook, err := excelize.OpenReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open the workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return []importtypes.Row{}, nil, nil
	}
	sheet := sheets[0]

	iterator, err := workbook.Rows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read worksheet %s: %w", sheet, err)
	}
	defer iterator.Close()

	rows := []importtypes.Row{}
	var rowErrors []importtypes.RowError

	line := 0
	for iterator.Next() {
		line++

		// Raw values keep numbers like modem serials intact, dates are
		// converted separately
		cells, err := iterator.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			rowErrors = append(rowErrors, importtypes.RowError{Row: line, Err: fmt.Errorf("invalid data: %w", err)})
			continue
		}

		if line == 1 {
			continue
		}

		row := importtypes.Row{
			Row:              line,
			ModelName:        cell(cells, ModelName),
			CompanyName:      cell(cells, CompanyName),
			Address:          cell(cells, Address),
			InstallationDate: date(workbook, sheet, line, cell(cells, InstallationDate)),
			StatusName:       cell(cells, StatusName),
			ModemSerial:      cell(cells, ModemSerial),
		}

		if row.Empty() {
			continue
		}

		rows = append(rows, row)
	}

	if err := iterator.Error(); err != nil {
		return nil, nil, fmt.Errorf("could not read worksheet %s: %w", sheet, err)
	}

	return rows, rowErrors, nil
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}

	return strings.TrimSpace(cells[i])
}

// date returns the installation date of a row.
//
// Cells formatted as date hold the Excel serial number as raw value,
// these are converted to YYYY-MM-DD. All other values are returned as is.
func date(workbook *excelize.File, sheet string, row int, value string) string {
	if _, err := types.ParseDate(value); err == nil || value == "" {
		return value
	}

	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}

	name, err := excelize.CoordinatesToCellName(InstallationDate+1, row)
	if err != nil {
		return value
	}

	if !hasDateFormat(workbook, sheet, name) {
		return value
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}

	return types.DateOf(t).String()
}

// builtInDateFormats are the IDs of the built-in number formats for dates,
// see ECMA-376 part 1, 18.8.30.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 30: true, 36: true, 45: true, 46: true, 47: true, 50: true, 57: true,
}

func hasDateFormat(workbook *excelize.File, sheet, cell string) bool {
	id, err := workbook.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}

	style, err := workbook.GetStyle(id)
	if err != nil || style == nil {
		return false
	}

	if builtInDateFormats[style.NumFmt] {
		return true
	}

	if style.CustomNumFmt == nil {
		return false
	}

	format := strings.ToLower(*style.CustomNumFmt)
	return strings.Contains(format, "yy") || strings.Contains(format, "dd")
}
