package entity

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleMember    Role = "member"
	RoleNonMember Role = "non-member"
	RoleStudent   Role = "student"
)

// Roles lists every role in descending order of access.
var Roles = []Role{RoleAdmin, RoleStaff, RoleMember, RoleNonMember, RoleStudent}

// ParseRole is the only way a raw string becomes a Role.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleAdmin, RoleStaff, RoleMember, RoleNonMember, RoleStudent:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsStaff() bool {
	return r == RoleStaff
}

func (r Role) IsMember() bool {
	return r == RoleMember
}

func (r Role) IsNonMember() bool {
	return r == RoleNonMember
}

func (r Role) IsAdminLevel() bool {
	return r == RoleAdmin
}

func (r Role) IsStaffLevel() bool {
	return r == RoleAdmin || r == RoleStaff
}

func (r Role) IsMemberLevel() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleMember
}
