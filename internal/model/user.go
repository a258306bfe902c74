package model

import (
	"time"
)

// User represents a registered user and their lead delivery preferences
type User struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"type:varchar(100);not null"`
	Email           string `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone           string `json:"phone" gorm:"type:varchar(20)"`
	PasswordHash    string `json:"-" gorm:"type:varchar(255);not null"`
	CompanyName     string `json:"company_name" gorm:"type:varchar(100)"`
	CompanyOverview string `json:"company_overview" gorm:"type:text"`
	Timezone        string `json:"timezone" gorm:"type:varchar(50);default:'UTC'"`
	// Comma-joined preference lists, decoded by the prefs package.
	CountryPreferences  string    `json:"-" gorm:"type:text"`
	CategoryPreferences string    `json:"-" gorm:"type:text"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
