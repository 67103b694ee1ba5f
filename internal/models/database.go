package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/inflection"
	"github.com/rs/zerolog/log"
	"github.com/vending-machines/backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ContextKey string

const (
	DBContextURL ContextKey = "vending-backend-url"
)

// Connect opens the database described by cfg, migrates the schema
// and registers the error callbacks.
func Connect(cfg config.Database) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	var db *gorm.DB
	var err error
	if cfg.Postgres() {
		log.Debug().Str("host", cfg.Host).Msg("DB_HOST is set, using postgresql")
		db, err = connectPostgres(cfg, gormConfig)
	} else {
		log.Debug().Str("path", cfg.Path).Msg("DB_HOST is not set, using sqlite")
		db, err = connectSQLite(cfg.Path, gormConfig)
	}
	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func connectPostgres(cfg config.Database, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func connectSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}

	// Migration runs with foreign keys disabled since sqlite does not support
	// ALTER COLUMN. Tables are copied, dropped and recreated instead.
	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", path)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()

	errs := []error{
		cb.Query().After("*").Register("vending:after_query", queryCallback),
		cb.Query().After("*").Register("vending:after_query_general", generalCallback),
		cb.Create().After("*").Register("vending:after_create", createUpdateCallback),
		cb.Create().After("*").Register("vending:after_create_general", generalCallback),
		cb.Update().After("*").Register("vending:after_update", createUpdateCallback),
		cb.Update().After("*").Register("vending:after_update_general", generalCallback),
		cb.Delete().After("*").Register("vending:after_delete_general", generalCallback),
	}

	return errors.Join(errs...)
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(inflection.Singular(db.Statement.Table), "_", " ")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueConstraints maps unique indexes to their errors, identified by
// the column list in sqlite messages and the index name in postgres messages.
var uniqueConstraints = []struct {
	sqlite   string
	postgres string
	err      error
}{
	{"device_types.name", "idx_device_types_name", ErrDeviceTypeNameNotUnique},
	{"device_statuses.name", "idx_device_statuses_name", ErrDeviceStatusNameNotUnique},
	{"modems.serial_number", "idx_modems_serial_number", ErrModemSerialNotUnique},
	{"users.email", "idx_users_email", ErrUserEmailNotUnique},
	{"roles.name", "idx_roles_name", ErrRoleNameNotUnique},
	{"contracts.contract_number", "idx_contracts_contract_number", ErrContractNumberNotUnique},
	{"payment_methods.name", "idx_payment_methods_name", ErrPaymentMethodNameNotUnique},
	{"inventories.device_id, inventories.product_id", "inventory_device_product", ErrInventoryNotUnique},
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()
	for _, c := range uniqueConstraints {
		if strings.Contains(msg, "UNIQUE constraint failed: "+c.sqlite) || strings.Contains(msg, fmt.Sprintf("unique constraint \"%s\"", c.postgres)) {
			db.Error = c.err
			return
		}
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "violates foreign key constraint") {
		db.Error = ErrReferenceInvalid
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		Company{},
		DeviceType{},
		DeviceModel{},
		DeviceStatus{},
		Location{},
		Modem{},
		Device{},
		Role{},
		User{},
		Contract{},
		Product{},
		PaymentMethod{},
		Sale{},
		Inventory{},
		Event{},
		Booking{},
		Service{},
	)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
