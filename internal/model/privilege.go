package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Record Sale"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product catalog
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Sales ledger
	{Code: "sale:create", Name: "Record Sale"},
	{Code: "sale:delete", Name: "Delete Sale"},
	{Code: "sale:view_all", Name: "View All Sales"},
	// Debt management
	{Code: "debt:view", Name: "View Debts"},
	{Code: "debt:pay", Name: "Record Debt Payment"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// SalespersonPrivileges lists the privilege codes granted to the restricted
// counter role. Everything else is manager-only.
var SalespersonPrivileges = []string{
	"product:view",
	"sale:create",
	"debt:view",
	"debt:pay",
}
