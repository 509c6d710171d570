package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // MANAGER, SALESPERSON
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleManager     = "MANAGER"
	RoleSalesperson = "SALESPERSON"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleManager,
		Name:        "Manager",
		Description: "Full access: catalog, sales, debts, reports, and staff accounts",
	},
	{
		Code:        RoleSalesperson,
		Name:        "Salesperson",
		Description: "Records sales and takes payments at the counter; sees own sales only",
	},
}
