// Package config loads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFiles are loaded, if they exist, before the environment is parsed.
// Variables that are already set take precedence.
var EnvFiles = []string{".env", ".env.local"}

var (
	ErrJWTSecretTooShort = errors.New("JWT_SECRET must be at least 32 bytes long")
	ErrAPIURLInvalid     = errors.New("API_URL must be an absolute URL")
)

// Database configures the database connection.
//
// If Host is set, PostgreSQL is used. Otherwise, the SQLite database
// at Path is used.
type Database struct {
	Path     string `env:"DB_PATH" envDefault:"data/gorm.db"`
	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"vending"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// Postgres reports if the PostgreSQL driver is used.
func (d Database) Postgres() bool {
	return d.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWT struct {
	Secret   string        `env:"JWT_SECRET,required"`
	Issuer   string        `env:"JWT_ISSUER" envDefault:"vending-backend"`
	Audience string        `env:"JWT_AUDIENCE" envDefault:"vending-clients"`
	TTL      time.Duration `env:"JWT_TTL" envDefault:"1h"`
}

type Import struct {
	MaxBytes int64 `env:"IMPORT_MAX_BYTES" envDefault:"10485760"`
}

type Config struct {
	Port             int      `env:"PORT" envDefault:"8080"`
	GinMode          string   `env:"GIN_MODE" envDefault:"release"`
	LogFormat        string   `env:"LOG_FORMAT"`
	APIURL           url.URL  `env:"API_URL,required"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:" "`
	EnablePprof      bool     `env:"ENABLE_PPROF" envDefault:"false"`

	Database Database
	JWT      JWT
	Import   Import
}

// Load reads the configuration from the environment after loading
// the EnvFiles that exist.
func Load() (Config, error) {
	var existing []string
	for _, f := range EnvFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("could not load env files: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.JWT.Secret) < 32 {
		return ErrJWTSecretTooShort
	}

	if !c.APIURL.IsAbs() {
		return ErrAPIURLInvalid
	}

	return nil
}
