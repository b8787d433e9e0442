// Package entities defines the domain entities of the note-keeping service.
package entities

import (
	"errors"
	"time"
)

// User domain errors.
var (
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidRole          = errors.New("unknown role")
	ErrEmptyPassword        = errors.New("password cannot be empty")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrWrongOldPassword     = errors.New("wrong old password")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrSuperAdminRestricted = errors.New("only the bootstrap actor may create super_admin users")
)

// Role is the access level assigned to a user. It is immutable after
// creation; no operation of this service changes it.
type Role string

// Known roles.
const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole validates a role string coming from the boundary layer.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Elevated reports whether the role sees notes of all owners. Only the plain
// user role is scoped to its own records.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the account record. Email is the identity and is unique at the
// storage layer. PasswordHash holds the bcrypt digest; plaintext is never
// stored and the digest never leaves the core.
type User struct {
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Profile is the externally visible view of a user, without the digest.
type Profile struct {
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile returns the sanitized view of the user.
func (u *User) Profile() *Profile {
	return &Profile{
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
