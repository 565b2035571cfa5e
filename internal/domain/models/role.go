package models

import "strings"

// Role distinguishes shop owners from counter staff.
type Role string

const (
	RoleOwner       Role = "Owner"
	RoleSalesperson Role = "Salesperson"
)

// ParseRole maps a header value to a Role. Anything unrecognised is a salesperson.
func ParseRole(value string) Role {
	if strings.EqualFold(strings.TrimSpace(value), string(RoleOwner)) {
		return RoleOwner
	}
	return RoleSalesperson
}
