package model

// Lead represents a prospect contact record. Leads are immutable once
// created and shared read-only across users until delivered.
type Lead struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	FullName   string `json:"full_name" gorm:"type:varchar(100);not null"`
	Email      string `json:"email" gorm:"type:varchar(100)"`
	Phone      string `json:"phone" gorm:"type:varchar(20)"`
	Country    string `json:"country" gorm:"type:varchar(50);index"`
	CompanyID  uint   `json:"company_id" gorm:"index;not null"`
	SourceInfo string `json:"source_info" gorm:"type:text"`

	Company Company `json:"-" gorm:"foreignKey:CompanyID"`
}
