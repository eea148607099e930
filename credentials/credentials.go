package credentials

import (
	"github.com/pkg/errors"

	"github.com/aimarketplace/go-client-auth/users"
)

var (
	InvalidCredentialsErr = errors.New("invalid credentials")
)

// Verifier validates an email/password pair and resolves it to a user
// record. A production deployment swaps the static implementation for a
// real identity provider behind this interface.
type Verifier interface {
	Verify(email, password string) (*users.User, error)
}

// Entry is a declared credential mapping: an email/password pair and the
// user record a successful login produces. Adding a role or a user is a
// data change here, not a control-flow change.
type Entry struct {
	Email    string
	Password string // Demo plaintext, hashed at construction
	User     users.User
}

// DemoEntries is the fixed credential table for the demo build.
func DemoEntries() []Entry {
	return []Entry{
		{
			Email:    "admin@aimarketplace.com",
			Password: "admin123",
			User: users.User{
				ID:    "admin-1",
				Email: "admin@aimarketplace.com",
				Name:  "Platform Admin",
				Role:  users.RoleAdmin,
			},
		},
		{
			Email:    "agent@aimarketplace.com",
			Password: "agent123",
			User: users.User{
				ID:       "agent-1",
				Email:    "agent@aimarketplace.com",
				Name:     "Demo Agent",
				Role:     users.RoleAgent,
				TenantID: "demo-tenant-1",
			},
		},
	}
}

type staticEntry struct {
	passwordHash string
	user         users.User
}

// StaticVerifier verifies credentials against a fixed in-process table.
// Email lookup is exact and case-sensitive; passwords are bcrypt-checked
// against hashes derived from the declared entries.
type StaticVerifier struct {
	entries map[string]staticEntry
}

var _ Verifier = (*StaticVerifier)(nil)

// NewStaticVerifier builds a verifier from a declared entry table. The demo
// passwords are hashed here so verification goes through the same
// CheckPasswordHash path a real backing store would use.
func NewStaticVerifier(entries []Entry) (*StaticVerifier, error) {
	if len(entries) == 0 {
		return nil, errors.New("[NewStaticVerifier] at least one credential entry is required")
	}

	sv := &StaticVerifier{entries: make(map[string]staticEntry, len(entries))}
	for _, e := range entries {
		if e.Email == "" {
			return nil, errors.New("[NewStaticVerifier] entry email is required")
		}
		if !e.User.Role.Valid() {
			return nil, errors.Errorf("[NewStaticVerifier] entry %q has unknown role %q", e.Email, e.User.Role)
		}
		hash, err := users.HashPassword(e.Password)
		if err != nil {
			return nil, errors.Wrap(err, "[NewStaticVerifier] HashPassword")
		}
		sv.entries[e.Email] = staticEntry{passwordHash: hash, user: e.User}
	}
	return sv, nil
}

// Verify resolves an email/password pair to its user record. Unknown email
// and wrong password are indistinguishable to the caller: both return
// InvalidCredentialsErr.
func (sv *StaticVerifier) Verify(email, password string) (*users.User, error) {
	entry, ok := sv.entries[email]
	if !ok {
		return nil, InvalidCredentialsErr
	}
	if !users.CheckPasswordHash(password, entry.passwordHash) {
		return nil, InvalidCredentialsErr
	}
	user := entry.user
	return &user, nil
}
