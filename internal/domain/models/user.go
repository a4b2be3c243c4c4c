package models

import (
	"slices"
	"strings"
	"time"
)

// Role is an authorization role carried in access tokens.
type Role string

const (
	RoleAdmin     Role = "ROLE_ADMINISTRADOR"
	RoleSeller    Role = "ROLE_VENDEDOR"
	RoleWarehouse Role = "ROLE_ALMACENISTA"
)

// ParseRole maps the short role names accepted at sign-up ("admin",
// "almacenista", ...) to a Role. Full role names are accepted as is.
// Anything unrecognised falls back to RoleSeller.
func ParseRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "admin", "administrador", strings.ToLower(string(RoleAdmin)):
		return RoleAdmin
	case "almacenista", "warehouse", strings.ToLower(string(RoleWarehouse)):
		return RoleWarehouse
	default:
		return RoleSeller
	}
}

// ParseRoles converts a list of role names, dropping duplicates. An empty
// list yields the seller role.
func ParseRoles(names []string) []Role {
	if len(names) == 0 {
		return []Role{RoleSeller}
	}
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role := ParseRole(name)
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// User is a system operator.
type User struct {
	ID           int64     `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Roles        []Role    `bson:"roles" json:"roles"`
	BranchIDs    []int64   `bson:"branch_ids" json:"branchIds"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u User) HasAnyRole(roles ...Role) bool {
	for _, r := range u.Roles {
		if slices.Contains(roles, r) {
			return true
		}
	}
	return false
}

// SignUpRequest is the registration payload.
type SignUpRequest struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required"`
	Roles    []string `json:"roles"`
	Branches []int64  `json:"branches"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JwtResponse is returned on successful sign-in.
type JwtResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// UserUpdate carries the optional fields of a user update.
type UserUpdate struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
	Branches []int64  `json:"branches"`
}
