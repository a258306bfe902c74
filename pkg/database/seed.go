package database

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/welovit/lead-buddy-app/internal/model"
)

// Seed populates the category, company and lead catalog on first run.
// Each table is seeded only when it is empty.
func Seed(db *gorm.DB) error {
	var count int64

	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []model.Category{
			{Name: "Health & Nutrition", Description: "Dietary supplements, weight-management and wellness products"},
			{Name: "Beauty", Description: "Skincare, cosmetics and personal care items"},
			{Name: "Essential Oils", Description: "Aromatherapy oils and diffusers"},
			{Name: "Financial Services", Description: "Insurance, investments and fintech offerings"},
			{Name: "Travel", Description: "Travel clubs and discount packages"},
			{Name: "Education", Description: "Online courses and coaching"},
			{Name: "Home Goods", Description: "Household products and cleaning supplies"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
	}

	var companies []model.Company
	if err := db.Model(&model.Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		companies = []model.Company{
			{Name: "NutriLife", CategoryID: 1, Overview: "Global provider of nutritional supplements.", WebsiteURL: "https://www.nutrilife.example", Country: "United States"},
			{Name: "Beauty Bloom", CategoryID: 2, Overview: "Skin care and beauty products.", WebsiteURL: "https://www.beautybloom.example", Country: "Canada"},
			{Name: "AromaCo", CategoryID: 3, Overview: "Essential oils and diffusers.", WebsiteURL: "https://www.aromaco.example", Country: "United Kingdom"},
			{Name: "FinSecure", CategoryID: 4, Overview: "Network marketing with insurance and investment products.", WebsiteURL: "https://www.finsecure.example", Country: "Australia"},
			{Name: "TravelWell", CategoryID: 5, Overview: "Discount travel packages and memberships.", WebsiteURL: "https://www.travelwell.example", Country: "South Africa"},
			{Name: "EduWorks", CategoryID: 6, Overview: "Online coaching and business courses.", WebsiteURL: "https://www.eduworks.example", Country: "India"},
			{Name: "HomeBright", CategoryID: 7, Overview: "Home goods and eco-friendly cleaning supplies.", WebsiteURL: "https://www.homebright.example", Country: "United States"},
		}
		if err := db.Create(&companies).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.Lead{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if len(companies) == 0 {
			if err := db.Order("id").Find(&companies).Error; err != nil {
				return err
			}
		}
		names := []string{
			"Alice Brown", "Bob Smith", "Carlos Diaz", "Diana Evans", "Ethan Fox",
			"Fiona Green", "George Harris", "Hannah Ito", "Ivan Jensen", "Julia Kim",
			"Kyle Lee", "Lina Martinez", "Mohamed Nasir", "Nina O'Connor", "Oscar Perez",
			"Patricia Quinn", "Quincy Rogers", "Riya Singh", "Sam Taylor", "Tamara Upton",
		}
		sourceInfo, err := json.Marshal(map[string]string{"source": "seed"})
		if err != nil {
			return err
		}
		leads := make([]model.Lead, 0, len(names))
		for idx, name := range names {
			company := companies[idx%len(companies)]
			leads = append(leads, model.Lead{
				FullName:   name,
				Email:      fmt.Sprintf("user%d@example.com", idx+1),
				Phone:      fmt.Sprintf("+100000000%02d", idx+1),
				Country:    company.Country,
				CompanyID:  company.ID,
				SourceInfo: string(sourceInfo),
			})
		}
		if err := db.Create(&leads).Error; err != nil {
			return err
		}
	}

	return nil
}
