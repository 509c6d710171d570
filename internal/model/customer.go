package model

// Customer is the debtor identity for credit sales. Created on demand from
// the sale dialog and immutable afterwards (no edit flow).
type Customer struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Phone string `gorm:"type:varchar(20)" json:"phone"`

	// Relations
	Sales []Sale `json:"sales,omitempty"`
}
