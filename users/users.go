package users

import (
	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user role within the marketplace assistant
type RoleType string

const (
	RoleAdmin      RoleType = "admin"      // Can manage all tenants and platform configuration
	RoleAgent      RoleType = "agent"      // Handles customer conversations within a tenant
	RoleSupervisor RoleType = "supervisor" // Oversees agents within a tenant
)

// Valid reports whether the role is one of the declared roles.
// The role set is closed: a record carrying any other value is rejected.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleSupervisor:
		return true
	}
	return false
}

// User is the authenticated identity held by a client process. The JSON
// layout matches the userData slot written to the durable store.
type User struct {
	ID       string   `json:"id"`                 // Unique identifier for the user
	Email    string   `json:"email"`              // User's email address
	Name     string   `json:"name"`               // Display name
	Role     RoleType `json:"role"`               // Role within the platform
	TenantID string   `json:"tenantId,omitempty"` // Tenant the user belongs to, empty for admins
}

// HasTenant reports whether the user belongs to the given tenant.
// An empty tenantID matches any user.
func (u *User) HasTenant(tenantID string) bool {
	if tenantID == "" {
		return true
	}
	return u.TenantID == tenantID
}

// IsAdmin returns true if the user has platform admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
