package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aimarketplace/go-client-auth/credentials"
	"github.com/aimarketplace/go-client-auth/internal/utils"
	"github.com/aimarketplace/go-client-auth/store"
	"github.com/aimarketplace/go-client-auth/token"
	"github.com/aimarketplace/go-client-auth/users"
)

// Manager holds the single active session of a client process. At most one
// session is active at a time; all state access goes through the mutex so
// concurrent callers preserve that invariant. No failure originating here
// escapes as an error: Login resolves to a boolean and Initialize/Logout
// resolve to a cleared or restored state.
type Manager struct {
	store    store.Store
	verifier credentials.Verifier
	issuer   *token.Issuer
	logger   zerolog.Logger

	mu          sync.RWMutex
	user        *users.User
	accessToken string
	loading     bool
	initialized bool
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithLogger overrides the package-global logger
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager initializes a session Manager with required dependencies. The
// manager starts in the loading state; callers must treat the status as
// indeterminate until Initialize has completed.
func NewManager(kv store.Store, verifier credentials.Verifier, issuer *token.Issuer, options ...ManagerOption) (*Manager, error) {
	if kv == nil {
		return nil, errors.New("[NewManager] store is required")
	}
	if verifier == nil {
		return nil, errors.New("[NewManager] verifier is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewManager] issuer is required")
	}

	manager := &Manager{
		store:    kv,
		verifier: verifier,
		issuer:   issuer,
		logger:   log.Logger,
		loading:  true,
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// Initialize restores a persisted session, once per process lifetime. A
// session is restored only when both slots are present and the user record
// decodes; anything else clears both slots and leaves the session empty.
// The loading flag drops on every exit path. Repeat calls are no-ops.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	if m.initialized {
		return
	}
	m.initialized = true

	storedToken, err := m.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, store.NotFoundErr) {
			m.logger.Warn().Err(err).Msg("session restore: token read failed")
		}
		m.clearStorage(ctx)
		return
	}

	storedUser, err := m.store.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, store.NotFoundErr) {
			m.logger.Warn().Err(err).Msg("session restore: user read failed")
		}
		m.clearStorage(ctx)
		return
	}

	user, err := decodeUser(storedUser)
	if err != nil {
		// Recovered locally: clear both slots, start unauthenticated.
		m.logger.Warn().Err(err).Msg("session restore: clearing corrupt session")
		m.clearStorage(ctx)
		return
	}

	m.user = user
	m.accessToken = storedToken
	m.logger.Debug().Str("email", user.Email).Msg("session restored")
}

// Login validates the credentials and, on success, persists and activates a
// new session. It returns false on unknown credentials or on any storage
// failure; in both cases neither memory nor storage holds a partial
// session. The durable write happens before the in-memory commit so the two
// cannot diverge on a failed write.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = true
	defer func() { m.loading = false }()

	user, err := m.verifier.Verify(email, password)
	if err != nil {
		if !errors.Is(err, credentials.InvalidCredentialsErr) {
			m.logger.Warn().Err(err).Msg("login: credential verification failed")
		}
		return false
	}

	accessToken, err := m.issuer.Issue(user)
	if err != nil {
		m.logger.Error().Err(err).Msg("login: token issuance failed")
		return false
	}

	encoded, err := encodeUser(user)
	if err != nil {
		m.logger.Error().Err(err).Msg("login: user encoding failed")
		return false
	}

	if err := m.store.Set(ctx, TokenKey, accessToken); err != nil {
		m.logger.Error().Err(err).Msg("login: token write failed")
		return false
	}
	if err := m.store.Set(ctx, UserKey, encoded); err != nil {
		// Keep the matched-pair invariant: a half-written session must not
		// survive a restart.
		m.logger.Error().Err(err).Msg("login: user write failed")
		if delErr := m.store.Delete(ctx, TokenKey); delErr != nil {
			m.logger.Warn().Err(delErr).Msg("login: token rollback failed")
		}
		return false
	}

	m.user = user
	m.accessToken = accessToken
	m.logger.Debug().Str("email", user.Email).Str("role", string(user.Role)).Msg("login succeeded")
	return true
}

// Logout clears both durable slots and the in-memory session. It is
// idempotent: with no active session it is a no-op with the same end state.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearStorage(ctx)
	m.user = nil
	m.accessToken = ""
}

// Status returns a read-only snapshot of the session state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var user *users.User
	if m.user != nil {
		user = utils.Ptr(utils.Value(m.user))
	}

	return Status{
		User:            user,
		IsAuthenticated: m.user != nil,
		Loading:         m.loading,
	}
}

// Token returns the bearer token of the active session, empty when none.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessToken
}

// clearStorage best-effort deletes both slots. Callers hold the lock.
func (m *Manager) clearStorage(ctx context.Context) {
	if err := m.store.Delete(ctx, TokenKey); err != nil {
		m.logger.Warn().Err(err).Msg("session: token delete failed")
	}
	if err := m.store.Delete(ctx, UserKey); err != nil {
		m.logger.Warn().Err(err).Msg("session: user delete failed")
	}
}
