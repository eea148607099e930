package token

import (
	"crypto/rand"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aimarketplace/go-client-auth/users"
)

const signingKeyLength = 32

// Issuer creates the opaque bearer token associated with a session. Tokens
// are issued locally: the HS256 signature uses a random per-process key and
// guards nothing across restarts. A restored session returns the stored
// token verbatim without re-verification. The jti claim makes every issued
// token unique within the process.
type Issuer struct {
	signingKey []byte
	nowFunc    func() time.Time
}

type IssuerOption func(*Issuer)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = now
	}
}

// NewIssuer creates a token issuer with a fresh random signing key.
func NewIssuer(options ...IssuerOption) (*Issuer, error) {
	key := make([]byte, signingKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "[NewIssuer] rand.Read")
	}

	issuer := &Issuer{
		signingKey: key,
		nowFunc:    time.Now,
	}

	for _, opt := range options {
		opt(issuer)
	}

	return issuer, nil
}

// Issue creates a bearer token carrying the user's identity claims.
func (i *Issuer) Issue(user *users.User) (string, error) {
	if user == nil {
		return "", errors.New("[Issuer.Issue] user is required")
	}

	claims := jwtlib.MapClaims{
		"sub":   user.ID,             // User's unique ID
		"email": user.Email,          // User email
		"name":  user.Name,           // Display name
		"role":  string(user.Role),   // Role within the platform
		"iat":   i.nowFunc().Unix(),  // Issued At: the time at which the token was issued
		"jti":   uuid.New().String(), // Unique token ID
	}

	if user.TenantID != "" {
		claims["tenant"] = user.TenantID
	}

	signedToken, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "[Issuer.Issue] SignedString")
	}
	return signedToken, nil
}
