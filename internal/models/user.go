package models

import (
	"time"

	"github.com/google/uuid"
)

// Role tags a user as an administrator or a regular member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the login name (unique).
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// FullName is the display name shown next to contributions.
	FullName string

	// PhoneNumber is used by the group chat integration of the client.
	PhoneNumber string

	// Role is admin or member.
	Role Role

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation time.
// An empty role defaults to member.
func NewUser(username, fullName, phoneNumber, passwordHash string, role Role) *User {
	if role == "" {
		role = RoleMember
	}
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     fullName,
		PhoneNumber:  phoneNumber,
		Role:         role,
		CreatedAt:    time.Now().Unix(),
	}
}

// IsAdmin reports whether the user can create and manage groups.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
