// Package models defines the entities persisted by the storage adapter and
// the views returned to API clients.
package models

import (
	"strings"
	"time"
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleFree  Role = "free"
	RoleLite  Role = "lite"
	RolePlus  Role = "plus"
	RolePro   Role = "pro"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleFree, RoleLite, RolePlus, RolePro}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFree, RoleLite, RolePlus, RolePro:
		return true
	default:
		return false
	}
}

// ParseRole converts s into a Role. The second result is false for any
// value outside the enumeration.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User is the identity record. PasswordHash never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Name         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the sanitized view of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch lists the mutable fields of a User; nil means "leave as is".
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	Name         *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.PasswordHash == nil && p.Role == nil && p.Name == nil
}

// Apply copies the set fields onto u and bumps UpdatedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Name != nil {
		name := *p.Name
		u.Name = &name
	}
	u.UpdatedAt = now
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
