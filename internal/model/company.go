package model

// Company represents the company a lead is attached to
type Company struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	CategoryID uint   `json:"category_id" gorm:"index;not null"`
	Overview   string `json:"overview" gorm:"type:text"`
	WebsiteURL string `json:"website_url" gorm:"type:varchar(255)"`
	Country    string `json:"country" gorm:"type:varchar(50)"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID"`
}
