// Package ledger owns the durable (user, lead) ownership records:
// which leads were delivered to whom, on which date, with what
// follow-up state. The delivery date of a record never changes, and a
// (user, lead) pair exists at most once.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/welovit/lead-buddy-app/internal/model"
)

// ErrNotOwned is returned by mutations targeting a lead that was never
// delivered to the user.
var ErrNotOwned = errors.New("ledger: lead not delivered to user")

const leadViewColumns = "leads.id AS lead_id, leads.full_name, leads.email, leads.phone, " +
	"leads.country, companies.name AS company, categories.name AS category, " +
	"companies.overview AS company_overview, companies.website_url AS company_website"

func joined(db *gorm.DB) *gorm.DB {
	return db.Model(&model.UserLead{}).
		Joins("JOIN leads ON leads.id = user_leads.lead_id").
		Joins("JOIN companies ON companies.id = leads.company_id").
		Joins("JOIN categories ON categories.id = companies.category_id")
}

// DeliveredOn returns the joined views of all leads delivered to the
// user on the given calendar date.
func DeliveredOn(db *gorm.DB, userID uint, date string) ([]model.LeadView, error) {
	views := []model.LeadView{}
	err := joined(db).
		Select(leadViewColumns).
		Where("user_leads.user_id = ? AND user_leads.delivery_date = ?", userID, date).
		Scan(&views).Error
	return views, err
}

// Delivered returns every lead ever delivered to the user, newest
// delivery date first and name ascending within a date. An empty
// status filters nothing.
func Delivered(db *gorm.DB, userID uint, status string) ([]model.DeliveredLeadView, error) {
	query := joined(db).
		Select(leadViewColumns + ", user_leads.status, user_leads.next_action_date, " +
			"user_leads.delivery_date, user_leads.notes").
		Where("user_leads.user_id = ?", userID)
	if status != "" {
		query = query.Where("user_leads.status = ?", status)
	}
	views := []model.DeliveredLeadView{}
	err := query.Order("user_leads.delivery_date DESC, leads.full_name ASC").Scan(&views).Error
	return views, err
}

// UpdateStatus sets the follow-up status (and optionally the next
// action date) on an ownership record. The delivery date is left
// untouched.
func UpdateStatus(db *gorm.DB, userID, leadID uint, status, nextActionDate string) error {
	result := db.Model(&model.UserLead{}).
		Where("user_id = ? AND lead_id = ?", userID, leadID).
		Updates(map[string]interface{}{
			"status":           status,
			"next_action_date": nextActionDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotOwned
	}
	return nil
}

// AppendNote appends a timestamped entry to the record's note log.
// Existing notes are never replaced.
func AppendNote(db *gorm.DB, userID, leadID uint, text string, now time.Time) error {
	var record model.UserLead
	err := db.Where("user_id = ? AND lead_id = ?", userID, leadID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotOwned
	}
	if err != nil {
		return err
	}
	entry := fmt.Sprintf("[%s] %s\n", now.UTC().Format(time.RFC3339), text)
	return db.Model(&record).Update("notes", record.Notes+entry).Error
}
