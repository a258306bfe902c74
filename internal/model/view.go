package model

// LeadView is the joined lead + company + category shape returned by
// the daily delivery endpoint.
type LeadView struct {
	LeadID          uint   `json:"lead_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	Company         string `json:"company"`
	Category        string `json:"category"`
	CompanyOverview string `json:"company_overview"`
	CompanyWebsite  string `json:"company_website"`
}

// DeliveredLeadView extends LeadView with the per-user follow-up state
// tracked on the ownership record.
type DeliveredLeadView struct {
	LeadView
	Status         string `json:"status"`
	NextActionDate string `json:"next_action_date"`
	DeliveryDate   string `json:"delivery_date"`
	Notes          string `json:"notes"`
}
