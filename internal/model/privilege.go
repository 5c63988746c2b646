package model

// Privilege represents a capability that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "stock:adjust"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Office management
	{Code: "office:view", Name: "View Office"},
	{Code: "office:manage", Name: "Manage Offices"},
	// Catalog
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "raw_material:view", Name: "View Raw Material"},
	{Code: "raw_material:manage", Name: "Manage Raw Materials"},
	// Stock & production
	{Code: "stock:view", Name: "View Stock"},
	{Code: "stock:adjust", Name: "Adjust Stock"},
	{Code: "production:create", Name: "Record Production"},
	// Transfers
	{Code: "transfer:view", Name: "View Transfers"},
	{Code: "transfer:create", Name: "Dispatch Transfer"},
	{Code: "transfer:receive", Name: "Receive Transfer"},
	// Point of sale
	{Code: "order:create", Name: "Create Order"},
	{Code: "order:view", Name: "View Orders"},
	{Code: "order:cancel", Name: "Cancel Ordered Product"},
	// Reporting
	{Code: "report:view", Name: "View Sales Reports"},
	{Code: "report:export", Name: "Export Sales Reports"},
	// Dashboard & audit
	{Code: "dashboard:view", Name: "View Dashboard"},
	{Code: "audit:view", Name: "View Audit Logs"},
}

// CashierPrivileges are the codes granted to the CASHIER role by default.
var CashierPrivileges = []string{
	"product:view",
	"stock:view",
	"order:create",
	"order:view",
	"dashboard:view",
}

// ManagerExcludedPrivileges are withheld from the MANAGER role (super admin only).
var ManagerExcludedPrivileges = []string{
	"user:create",
	"user:update",
	"user:delete",
	"user:update_privilege",
	"office:manage",
}
