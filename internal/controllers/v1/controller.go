// Package v1 implements the v1 REST API of the vending backend.
package v1

import (
	"github.com/vending-machines/backend/internal/auth"
	"github.com/vending-machines/backend/internal/generator"
	"github.com/vending-machines/backend/internal/importer"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all v1 handlers.
type Controller struct {
	DB        *gorm.DB
	Tokens    *auth.Tokens
	Importer  *importer.Importer
	Generator *generator.Generator
}

// New returns a Controller. If imp is nil, an Importer with the default
// size limit is created for db.
func New(db *gorm.DB, tokens *auth.Tokens, imp *importer.Importer, gen *generator.Generator) Controller {
	if imp == nil {
		imp = importer.New(db, importer.DefaultMaxBytes)
	}

	if gen == nil {
		gen = generator.NewSeeded()
	}

	return Controller{
		DB:        db,
		Tokens:    tokens,
		Importer:  imp,
		Generator: gen,
	}
}
