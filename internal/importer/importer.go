// Package importer imports device lists into the database.
//
// An import is one synchronous job: the file is parsed, all rows are
// validated and then resolved and inserted in a single transaction. Either
// all devices of the file are imported or none.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/vending-machines/backend/internal/importer/helpers"
	"github.com/vending-machines/backend/internal/importer/parser/csvimport"
	"github.com/vending-machines/backend/internal/importer/parser/xlsximport"
	importtypes "github.com/vending-machines/backend/internal/importer/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultMaxBytes is the maximum file size if none is configured.
const DefaultMaxBytes int64 = 10 << 20

// Outcomes of an import job as reported in the metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Result is the outcome of an import job.
type Result struct {
	Success       bool     `json:"success" example:"true"`                            // Whether all devices have been imported
	ImportedCount int      `json:"importedCount" example:"2"`                         // Number of imported devices
	Message       *string  `json:"message" example:"Successfully imported 2 devices"` // Summary, only set on success
	Errors        []string `json:"errors" example:"Row 3: address is required"`       // All errors, empty on success
}

func failure(errs ...string) Result {
	return Result{
		Errors: errs,
	}
}

var jobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "device_import_jobs_total",
		Help: "How many device import jobs have been processed, partitioned by outcome.",
	},
	[]string{"outcome"},
)

var rowsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "device_import_rows_total",
		Help: "How many rows of device imports have been processed, partitioned by result.",
	},
	[]string{"result"},
)

// Metrics are the Prometheus collectors of the importer.
var Metrics = []prometheus.Collector{
	jobsTotal,
	rowsTotal,
}

// Importer imports device lists.
type Importer struct {
	db       *gorm.DB
	maxBytes int64
}

// New returns an Importer writing to db. Files larger than maxBytes are
// rejected. If maxBytes is not positive, DefaultMaxBytes is used.
func New(db *gorm.DB, maxBytes int64) *Importer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Importer{
		db:       db,
		maxBytes: maxBytes,
	}
}

// MaxBytes returns the maximum size of a file.
func (i *Importer) MaxBytes() int64 {
	return i.maxBytes
}

// Import imports the devices of the file.
//
// It never returns an error, all problems are reported in the Result.
func (i *Importer) Import(ctx context.Context, filename string, r io.Reader) Result {
	start := time.Now()
	logger := log.With().Str("file", filename).Logger()

	var (
		kind    Kind
		rows    []importtypes.Row
		outcome string
		result  Result
	)

	defer func() {
		jobsTotal.WithLabelValues(outcome).Inc()

		if result.Success {
			rowsTotal.WithLabelValues("imported").Add(float64(result.ImportedCount))
		} else {
			rowsTotal.WithLabelValues("rejected").Add(float64(len(rows)))
		}

		event := logger.Info()
		if !result.Success {
			event = logger.Warn().Strs("errors", result.Errors)
		}

		event.
			Str("kind", string(kind)).
			Int("rows", len(rows)).
			Str("outcome", outcome).
			Dur("duration", time.Since(start)).
			Msg("device import")
	}()

	kind, err := KindOf(filename)
	if err != nil {
		outcome = OutcomeRejected
		result = failure(err.Error())
		return result
	}

	data, err := i.read(r)
	if err != nil {
		outcome = OutcomeRejected
		result = failure(err.Error())
		return result
	}
	logger = logger.With().Str("sha256", helpers.Sha256(data)).Logger()

	var rowErrors []importtypes.RowError
	switch kind {
	case KindXLSX:
		rows, rowErrors, err = xlsximport.Parse(bytes.NewReader(data))
	case KindCSV:
		rows, rowErrors, err = csvimport.Parse(bytes.NewReader(data))
	}

	if err != nil {
		outcome = OutcomeRejected
		result = failure(fmt.Sprintf("could not read the file: %v", err))
		return result
	}

	errs := make([]string, 0, len(rowErrors))
	for _, e := range rowErrors {
		errs = append(errs, e.Error())
	}
	errs = append(errs, Validate(rows)...)

	if len(errs) > 0 {
		outcome = OutcomeInvalid
		result = failure(errs...)
		return result
	}

	errs = i.insert(ctx, rows)
	if len(errs) > 0 {
		outcome = OutcomeFailed
		result = failure(errs...)
		return result
	}

	message := fmt.Sprintf("Successfully imported %d devices", len(rows))
	outcome = OutcomeSuccess
	result = Result{
		Success:       true,
		ImportedCount: len(rows),
		Message:       &message,
		Errors:        []string{},
	}

	return result
}

// read reads the whole file, enforcing the size limit.
func (i *Importer) read(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, ErrNoFile
	}

	data, err := io.ReadAll(io.LimitReader(r, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read the file: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrNoFile
	}

	if int64(len(data)) > i.maxBytes {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// insert resolves and creates the devices for all rows in one transaction.
//
// Every row runs in its own savepoint so that a failing row does not
// abort the transaction for the following ones. If any row fails, the
// transaction is rolled back and all errors are returned.
func (i *Importer) insert(ctx context.Context, rows []importtypes.Row) []string {
	tx := i.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return []string{fmt.Sprintf("could not import the devices: %v", tx.Error)}
	}

	errs := []string{}
	for _, row := range rows {
		if err := insertRow(tx, row); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: could not import the row: %v", row.Row, err))
		}
	}

	if len(errs) > 0 {
		if err := tx.Rollback().Error; err != nil {
			log.Error().Err(err).Msg("could not roll back device import")
		}
		return errs
	}

	if err := tx.Commit().Error; err != nil {
		return []string{fmt.Sprintf("could not import the devices: %v", err)}
	}

	return nil
}

func insertRow(tx *gorm.DB, row importtypes.Row) error {
	savepoint := fmt.Sprintf("row_%d", row.Row)
	if err := tx.SavePoint(savepoint).Error; err != nil {
		return err
	}

	device, err := Resolve(tx, row)
	if err == nil {
		err = tx.Omit(clause.Associations).Create(&device).Error
	}

	if err != nil {
		if rbErr := tx.RollbackTo(savepoint).Error; rbErr != nil {
			log.Error().Err(rbErr).Str("savepoint", savepoint).Msg("could not roll back to savepoint")
		}
		return err
	}

	return nil
}
