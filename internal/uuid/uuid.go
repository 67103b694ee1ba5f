// Package uuid wraps google/uuid so that IDs can be bound from URI and
// query parameters by gin.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s into a UUID. An empty string is the Nil UUID.
func Parse(s string) (UUID, error) {
	var u UUID
	err := u.UnmarshalParam(s)
	return u, err
}

// Ptr returns a pointer to the wrapped google UUID, or nil for the Nil UUID.
//
// Optional foreign keys on models are *uuid.UUID, this converts filter
// values to them.
func (u UUID) Ptr() *google_uuid.UUID {
	if u == Nil {
		return nil
	}

	id := u.UUID
	return &id
}

// UnmarshalParam implements gin's binding.BindUnmarshaler
// with https://pkg.go.dev/github.com/google/uuid#Parse
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
