package domain

import (
	"crypto/subtle"
	"strings"
)

// Role determines what a user may see and which workflow actions they are offered.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleManager   Role = "manager"
)

// IsValid returns true if the role is a known valid value.
func (r Role) IsValid() bool {
	return r == RoleDeveloper || r == RoleManager
}

// User is a seeded account. Users are immutable; identity is by ID.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsManager returns true if the user has the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// UserDirectory resolves users by ID or email.
type UserDirectory interface {
	// Users returns all known users.
	Users() []User

	// FindByID returns the user with the given ID.
	FindByID(id string) (User, bool)

	// FindByEmail returns the user with the given email (case-insensitive).
	FindByEmail(email string) (User, bool)
}

// StaticDirectory is a UserDirectory backed by a fixed user list.
type StaticDirectory struct {
	users []User
}

// NewStaticDirectory creates a directory over the given users.
func NewStaticDirectory(users []User) *StaticDirectory {
	return &StaticDirectory{users: append([]User(nil), users...)}
}

// Users returns a copy of all users.
func (d *StaticDirectory) Users() []User {
	return append([]User(nil), d.users...)
}

// FindByID returns the user with the given ID.
func (d *StaticDirectory) FindByID(id string) (User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindByEmail returns the user with the given email.
func (d *StaticDirectory) FindByEmail(email string) (User, bool) {
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

var _ UserDirectory = (*StaticDirectory)(nil)

// DefaultSharedPassword is the single password accepted for every seeded user.
// This is a demo credential check, not security.
const DefaultSharedPassword = "password"

// SharedPassword accepts exactly one plain-text password.
type SharedPassword string

// Verify compares password in constant time.
func (p SharedPassword) Verify(password string) bool {
	return subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
}

var _ PasswordVerifier = SharedPassword("")

// Authenticate returns the seeded user matching email if passwords accepts password.
func Authenticate(users UserDirectory, email, password string, passwords PasswordVerifier) (User, error) {
	user, ok := users.FindByEmail(strings.TrimSpace(email))
	if !ok || !passwords.Verify(password) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
