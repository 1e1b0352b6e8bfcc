package entities

import (
	"strings"
	"time"
)

// Role is an account role known to the auth service
type Role string

const (
	RoleUser    Role = "korisnik"
	RoleOfficer Role = "sluzbenik"
	RoleAdmin   Role = "admin"
)

// Roles lists the roles offered at registration
var Roles = []Role{RoleUser, RoleOfficer, RoleAdmin}

// NormalizeRole lower-cases and trims a role, mapping empty to RoleUser.
// It reports false for roles the auth service does not accept.
func NormalizeRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case "":
		return RoleUser, true
	case RoleUser, RoleOfficer, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// Profile is the authenticated account as returned by the auth service
type Profile struct {
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is the login response
type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

// Credentials are the login and registration form fields
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}
