package importer

import (
	"fmt"
	"strings"

	importtypes "github.com/vending-machines/backend/internal/importer/types"
	"github.com/vending-machines/backend/internal/types"
)

// Validate checks all rows and returns one message per violated rule.
// Every row is checked independently, all errors are collected. Values
// consisting only of whitespace count as missing.
func Validate(rows []importtypes.Row) []string {
	errs := []string{}

	for _, row := range rows {
		if strings.TrimSpace(row.ModelName) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: model name is required", row.Row))
		}

		if strings.TrimSpace(row.CompanyName) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: company name is required", row.Row))
		}

		if strings.TrimSpace(row.Address) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: address is required", row.Row))
		}

		if _, err := types.ParseDate(strings.TrimSpace(row.InstallationDate)); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: installation date must be in the format YYYY-MM-DD", row.Row))
		}
	}

	return errs
}
