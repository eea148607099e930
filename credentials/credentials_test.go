package credentials_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aimarketplace/go-client-auth/credentials"
	"github.com/aimarketplace/go-client-auth/users"
)

func newDemoVerifier(t *testing.T) *credentials.StaticVerifier {
	t.Helper()
	verifier, err := credentials.NewStaticVerifier(credentials.DemoEntries())
	require.NoError(t, err)
	return verifier
}

func TestNewStaticVerifier_Validation(t *testing.T) {
	_, err := credentials.NewStaticVerifier(nil)
	require.Error(t, err)

	_, err = credentials.NewStaticVerifier([]credentials.Entry{
		{Email: "", Password: "x", User: users.User{Role: users.RoleAgent}},
	})
	require.Error(t, err)

	_, err = credentials.NewStaticVerifier([]credentials.Entry{
		{Email: "x@y.com", Password: "x", User: users.User{Role: "root"}},
	})
	require.Error(t, err, "roles outside the declared set are rejected")
}

func TestVerify_DemoEntries(t *testing.T) {
	verifier := newDemoVerifier(t)

	admin, err := verifier.Verify("admin@aimarketplace.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, users.RoleAdmin, admin.Role)
	require.Empty(t, admin.TenantID)

	agent, err := verifier.Verify("agent@aimarketplace.com", "agent123")
	require.NoError(t, err)
	require.Equal(t, users.RoleAgent, agent.Role)
	require.Equal(t, "demo-tenant-1", agent.TenantID)
}

func TestVerify_RejectsNonMatches(t *testing.T) {
	verifier := newDemoVerifier(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "ghost@aimarketplace.com", password: "admin123"},
		{name: "wrong password", email: "admin@aimarketplace.com", password: "admin1234"},
		{name: "email case", email: "ADMIN@AIMARKETPLACE.COM", password: "admin123"},
		{name: "password case", email: "admin@aimarketplace.com", password: "ADMIN123"},
		{name: "empty password", email: "admin@aimarketplace.com", password: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := verifier.Verify(tc.email, tc.password)
			require.ErrorIs(t, err, credentials.InvalidCredentialsErr)
			require.Nil(t, user)
		})
	}
}

func TestVerify_ReturnsCopy(t *testing.T) {
	verifier := newDemoVerifier(t)

	first, err := verifier.Verify("admin@aimarketplace.com", "admin123")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := verifier.Verify("admin@aimarketplace.com", "admin123")
	require.NoError(t, err)
	require.NotEqual(t, first.Name, second.Name, "callers must not share the table's record")
}
