package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrCredentialsInvalid = errors.New("the email address or password is incorrect")

// HashPassword returns the bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares the password with a hash from HashPassword.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrCredentialsInvalid
	}

	return nil
}
