package types

import (
	"database/sql/driver"
)

// CustomerPreferences is the settings blob attached to a customer profile.
type CustomerPreferences struct {
	Newsletter         bool     `json:"newsletter"`
	ScanNotifications  bool     `json:"scan_notifications"`
	PreferredLanguage  string   `json:"preferred_language,omitempty"`
	InterestCategories []string `json:"interest_categories,omitempty"`
}

func (p CustomerPreferences) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *CustomerPreferences) Scan(value interface{}) error {
	return jsonbScan(value, p, "customer_preferences")
}
