package models

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindBy returns the oldest T whose column equals value exactly.
// If there is none, it returns nil without an error.
func FindBy[T any](tx *gorm.DB, column, value string) (*T, error) {
	var resource T
	err := tx.
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		First(&resource).Error

	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// FindOrCreate returns the oldest T whose column equals value. If there is
// none, the resource returned by build is created. The boolean reports if
// the resource was created.
func FindOrCreate[T any](tx *gorm.DB, column, value string, build func() T) (T, bool, error) {
	found, err := FindBy[T](tx, column, value)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if found != nil {
		return *found, false, nil
	}

	resource := build()
	err = tx.Create(&resource).Error
	if err != nil {
		var zero T
		return zero, false, err
	}

	return resource, true, nil
}
