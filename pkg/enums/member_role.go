package enums

import "fmt"

// MemberRole represents a store-level permissions role.
type MemberRole string

const (
	MemberRoleSuperAdmin     MemberRole = "super_admin"
	MemberRoleAdmin          MemberRole = "admin"
	MemberRoleStoreOwner     MemberRole = "store_owner"
	MemberRoleGeneralManager MemberRole = "general_manager"
	MemberRoleAccountant     MemberRole = "accountant"
	MemberRoleCashier        MemberRole = "cashier"
)

var validMemberRoles = []MemberRole{
	MemberRoleSuperAdmin,
	MemberRoleAdmin,
	MemberRoleStoreOwner,
	MemberRoleGeneralManager,
	MemberRoleAccountant,
	MemberRoleCashier,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
