package model

// Category represents a product/service category a company belongs to.
// Static reference data, seeded at startup.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}
