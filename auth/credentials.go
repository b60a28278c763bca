package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single shared admin login.
type Credentials struct {
	username     string
	password     string
	passwordHash []byte
}

// NewCredentials builds the admin login. A non-empty bcrypt passwordHash
// takes precedence over the plain password.
func NewCredentials(username, password, passwordHash string) Credentials {
	c := Credentials{username: username, password: password}
	if passwordHash != "" {
		c.passwordHash = []byte(passwordHash)
	}
	return c
}

// Check reports whether username and password match the admin login.
func (c Credentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1

	var passOK bool
	if c.passwordHash != nil {
		passOK = bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	}
	return userOK && passOK
}
