package domain

import (
	"fmt"

	apperrors "sareemart/internal/errors"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return Role(s), nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown role %q", s), apperrors.ValidationDetail{
		Field:   "role",
		Message: "role must be one of ADMIN, STAFF, CUSTOMER",
	})
}

// Principal is the resolved identity of a request's actor. It is built once
// per request from session evidence and never mutated.
type Principal struct {
	ID   string
	Role Role
}

// Anonymous marks a request with no resolvable identity. The zero-value ID
// distinguishes it from every persisted user.
var Anonymous = Principal{}

func (p Principal) IsAnonymous() bool {
	return p.ID == ""
}
