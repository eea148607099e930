// Package session owns the authenticated-user state of a client process:
// it validates credentials, persists the session across restarts through a
// durable key-value store, and exposes the current authentication status.
package session

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/aimarketplace/go-client-auth/users"
)

// Durable store slot names. Only the session manager writes these keys.
const (
	TokenKey = "authToken"
	UserKey  = "userData"
)

var (
	CorruptSessionErr = errors.New("stored session data is corrupt")
)

// Status is a read-only view of the session state. IsAuthenticated is
// derived: it is true exactly when User is non-nil.
type Status struct {
	User            *users.User
	IsAuthenticated bool
	Loading         bool
}

// decodeUser deserializes a stored user record. Corruption is an expected,
// recoverable condition and is reported as a value, not a panic: any decode
// failure, missing identity fields, or a role outside the closed set maps
// to CorruptSessionErr.
func decodeUser(data string) (*users.User, error) {
	var user users.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, errors.Wrap(CorruptSessionErr, err.Error())
	}
	if user.ID == "" || user.Email == "" {
		return nil, errors.Wrap(CorruptSessionErr, "missing identity fields")
	}
	if !user.Role.Valid() {
		return nil, errors.Wrapf(CorruptSessionErr, "unknown role %q", user.Role)
	}
	return &user, nil
}

func encodeUser(user *users.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", errors.Wrap(err, "[encodeUser] json.Marshal")
	}
	return string(data), nil
}
