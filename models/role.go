package models

import "edrina-resto/apperrors"

type Role string

const (
	RoleServer  Role = "server"
	RoleChef    Role = "chef"
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleServer, RoleChef, RoleCashier, RoleAdmin:
		return Role(s), nil
	}
	return "", apperrors.Validationf("unknown role %q", s)
}

type Capability int

const (
	CapSubmitOrder Capability = iota
	CapEditOrder
	CapAdvanceToReady
	CapAdvanceToPaid
	CapDeleteOrder
	CapManageMenu
	CapManageUsers
	CapViewStats
	CapExportOrders
)

// capabilities is the single gating table consulted by every role-gated
// operation. Views never re-derive permissions from the role string.
var capabilities = map[Role]map[Capability]bool{
	RoleServer: {
		CapSubmitOrder: true,
		CapEditOrder:   true,
	},
	RoleChef: {
		CapAdvanceToReady: true,
		CapManageMenu:     true,
	},
	RoleCashier: {
		CapAdvanceToPaid: true,
		CapViewStats:     true,
	},
	RoleAdmin: {
		CapDeleteOrder:  true,
		CapManageMenu:   true,
		CapManageUsers:  true,
		CapViewStats:    true,
		CapExportOrders: true,
	},
}

func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}
