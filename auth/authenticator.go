package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/diaver-site-backend/config"
	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rs/zerolog/log"
)

// Authenticator checks admin requests. It accepts a bearer token from Login
// or HTTP Basic credentials as sent by the admin page.
type Authenticator struct {
	credentials Credentials
	issuer      *Issuer
}

func NewAuthenticator(credentials Credentials, issuer *Issuer) *Authenticator {
	return &Authenticator{credentials: credentials, issuer: issuer}
}

// NewAuthenticatorFromConfig reads ADMIN_USERNAME, ADMIN_PASSWORD,
// ADMIN_PASSWORD_HASH, JWT_SECRET and TOKEN_TTL_HOURS.
func NewAuthenticatorFromConfig(c map[string]string) (*Authenticator, error) {
	username := config.GetString(c, "ADMIN_USERNAME", "admin")
	password := config.GetString(c, "ADMIN_PASSWORD", "admin")
	hash := config.GetString(c, "ADMIN_PASSWORD_HASH", "")
	if hash == "" && password == "admin" {
		log.Warn().Msg("Admin password is the default, set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	ttl := time.Duration(config.GetInt(c, "TOKEN_TTL_HOURS", 12)) * time.Hour
	issuer, err := NewIssuer(config.GetString(c, "JWT_SECRET", ""), ttl)
	if err != nil {
		return nil, err
	}
	return NewAuthenticator(NewCredentials(username, password, hash), issuer), nil
}

// Login exchanges credentials for a signed token.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	if !a.credentials.Check(username, password) {
		return "", time.Time{}, errs.NewInvalidCredentialsError()
	}
	return a.issuer.Issue(username)
}

// Authenticate returns the admin name of an authorised request.
func (a *Authenticator) Authenticate(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errs.NewMissingTokenError()
	}

	if token, ok := cutPrefixFold(header, "Bearer "); ok {
		return a.issuer.Verify(strings.TrimSpace(token))
	}

	if username, password, ok := r.BasicAuth(); ok {
		if !a.credentials.Check(username, password) {
			return "", errs.NewInvalidCredentialsError()
		}
		return username, nil
	}

	return "", errs.NewUnauthorizedError("unsupported authorization scheme")
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
