package access

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// ===============================
// Capabilities
// ===============================

type Capability string

const (
	CanCreateRecords   Capability = "create_records"
	CanViewRecords     Capability = "view_records"
	CanEditRecords     Capability = "edit_records"
	CanDeleteRecords   Capability = "delete_records"
	CanCompleteRecords Capability = "complete_records"
	CanViewAnalytics   Capability = "view_analytics"
	CanExportReports   Capability = "export_reports"
	CanManageCatalog   Capability = "manage_catalog"
	CanManageLedger    Capability = "manage_ledger"
	CanManageExpenses  Capability = "manage_expenses"
	CanManageInventory Capability = "manage_inventory"
	CanManageUsers     Capability = "manage_users"
)

var (
	everyone   = []Role{RoleAdmin, RoleManager, RoleEmployee}
	supervisor = []Role{RoleAdmin, RoleManager}
	adminOnly  = []Role{RoleAdmin}
)

var grants = map[Capability][]Role{
	CanCreateRecords:   everyone,
	CanViewRecords:     everyone,
	CanCompleteRecords: everyone,
	CanEditRecords:     supervisor,
	CanDeleteRecords:   supervisor,
	CanViewAnalytics:   supervisor,
	CanExportReports:   supervisor,
	CanManageCatalog:   supervisor,
	CanManageExpenses:  supervisor,
	CanManageInventory: supervisor,
	CanManageLedger:    adminOnly,
	CanManageUsers:     adminOnly,
}

// Allows reports whether role holds capability. Unknown roles hold nothing.
func Allows(role Role, capability Capability) bool {
	for _, r := range grants[capability] {
		if r == role {
			return true
		}
	}
	return false
}
