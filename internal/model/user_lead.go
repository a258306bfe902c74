package model

import (
	"time"
)

// UserLead is the durable record of a lead delivered to a user. Each
// (user, lead) pair exists at most once; the delivery date never
// changes after creation, which is what keeps daily delivery
// idempotent and lifetime exclusion enforceable.
type UserLead struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lead"`
	LeadID uint `json:"lead_id" gorm:"not null;uniqueIndex:idx_user_lead"`
	// Calendar date (YYYY-MM-DD, UTC) the lead was first delivered.
	DeliveryDate   string    `json:"delivery_date" gorm:"type:varchar(10);not null;index"`
	Status         string    `json:"status" gorm:"type:varchar(50)"`
	NextActionDate string    `json:"next_action_date" gorm:"type:varchar(10)"`
	Notes          string    `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Lead Lead `json:"-" gorm:"foreignKey:LeadID"`
}
