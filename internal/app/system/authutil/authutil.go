// internal/app/system/authutil/authutil.go
// Package authutil verifies the operator credentials configured for the site.
package authutil

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

// ErrNoPassword is returned when neither a password nor a password hash is
// configured. Login is impossible until one is set.
var ErrNoPassword = errors.New("no operator password configured")

// Credentials holds the single operator account, sourced from configuration.
// PasswordHash (bcrypt) takes precedence over the plain Password; the plain
// form exists for local development only.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Validate reports whether the credentials are usable at all.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("operator username is empty")
	}
	if c.Password == "" && c.PasswordHash == "" {
		return ErrNoPassword
	}
	return nil
}

// Verify checks a login attempt against the configured credentials.
// Comparisons are constant-time so a failed attempt leaks nothing about
// which field was wrong.
func (c Credentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1

	var passOK bool
	switch {
	case c.PasswordHash != "":
		passOK = CheckPassword(password, c.PasswordHash)
	case c.Password != "":
		passOK = subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	}

	return userOK && passOK
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
// Returns true if the password matches, false otherwise.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
