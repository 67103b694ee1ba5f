package test

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vending-machines/backend/internal/config"
)

// JWTSecret is the signing secret used by Config.
const JWTSecret = "test-secret-that-is-long-enough-for-hs256"

// Config returns a configuration for tests. The API URL is read from
// the API_URL environment variable, the database is a temporary file.
func Config(t *testing.T) config.Config {
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		assert.FailNow(t, "environment variable API_URL must be set")
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		assert.FailNow(t, "environment variable API_URL must be a valid URL")
	}

	return config.Config{
		Port:      8080,
		GinMode:   "debug",
		LogFormat: "human",
		APIURL:    *baseURL,
		Database: config.Database{
			Path: TmpFile(t),
		},
		JWT: config.JWT{
			Secret:   JWTSecret,
			Issuer:   "vending-backend",
			Audience: "vending-clients",
			TTL:      time.Hour,
		},
		Import: config.Import{
			MaxBytes: 1 << 20,
		},
	}
}
