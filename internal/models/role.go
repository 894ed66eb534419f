package models

import (
	"fmt"
	"strings"
)

// Role is a flat capability label asserted per request. There is no hierarchy
// between roles: every endpoint declares an explicit allow-set and membership
// is the whole authorization decision.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleWaiter  Role = "waiter"
	RoleKitchen Role = "kitchen"
	RoleGuest   Role = "guest"
)

// AllRoles returns the closed role set in stable order.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleManager, RoleWaiter, RoleKitchen, RoleGuest}
}

// RoleNames returns the allowed role values joined for error messages.
func RoleNames() string {
	all := AllRoles()
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = string(r)
	}
	return strings.Join(names, "|")
}

// ParseRole normalizes a role token (trim, lower-case) and validates it
// against the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleOwner, RoleManager, RoleWaiter, RoleKitchen, RoleGuest:
		return r, nil
	}
	return "", fmt.Errorf("invalid role %q, allowed: %s", s, RoleNames())
}
