package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type Role struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex"`
	Description string
}

func (r *Role) BeforeSave(_ *gorm.DB) error {
	if err := checkLength("role name", &r.Name, 50); err != nil {
		return err
	}

	if r.Name == "" {
		return ErrNameRequired
	}

	return nil
}

// User is a person that can log in to the API.
type User struct {
	DefaultModel
	LastName       string
	FirstName      string
	MiddleName     string
	Email          string `gorm:"uniqueIndex"`
	Phone          string
	HashedPassword string
	Role           *Role
	RoleID         *uuid.UUID `gorm:"type:uuid"`
	Company        *Company
	CompanyID      *uuid.UUID `gorm:"type:uuid"`
	Language       string
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	for _, f := range []struct {
		name  string
		value *string
		max   int
	}{
		{"last name", &u.LastName, 50},
		{"first name", &u.FirstName, 50},
		{"middle name", &u.MiddleName, 50},
		{"email", &u.Email, 255},
		{"phone", &u.Phone, 18},
	} {
		if err := checkLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if u.Language != "" {
		tag, err := language.Parse(u.Language)
		if err != nil {
			return ErrLanguageInvalid
		}
		u.Language = tag.String()
	}

	return nil
}

// FullName returns the name in "Last First Middle" order, skipping empty parts.
func (u User) FullName() string {
	return strings.Join(strings.Fields(strings.Join([]string{u.LastName, u.FirstName, u.MiddleName}, " ")), " ")
}
