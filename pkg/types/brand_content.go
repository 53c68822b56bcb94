package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Certification is one entry in a brand's certification list.
type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Year        int    `json:"year,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
}

// Validate checks the internal shape the storage layer does not enforce.
func (c Certification) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("certification: missing name")
	}
	if strings.TrimSpace(c.Issuer) == "" {
		return fmt.Errorf("certification: missing issuer")
	}
	return nil
}

// Certifications is the JSONB-persisted certification list.
type Certifications []Certification

func (c Certifications) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return jsonbValue(c)
}

func (c *Certifications) Scan(value interface{}) error {
	return jsonbScan(value, c, "certifications")
}

// Award is one entry in a brand's award list.
type Award struct {
	Title    string `json:"title"`
	Year     int    `json:"year,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Awards is the JSONB-persisted award list.
type Awards []Award

func (a Awards) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return jsonbValue(a)
}

func (a *Awards) Scan(value interface{}) error {
	return jsonbScan(value, a, "awards")
}

// PressFeature is one entry in a brand's press coverage list.
type PressFeature struct {
	Outlet string `json:"outlet"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	Date   string `json:"date,omitempty"`
}

// PressFeatures is the JSONB-persisted press list.
type PressFeatures []PressFeature

func (p PressFeatures) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return jsonbValue(p)
}

func (p *PressFeatures) Scan(value interface{}) error {
	return jsonbScan(value, p, "press_features")
}

// ProductHighlight is one featured or new-launch product card.
type ProductHighlight struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	LinkURL     string `json:"link_url,omitempty"`
}

// ProductHighlights is the JSONB-persisted product card list.
type ProductHighlights []ProductHighlight

func (p ProductHighlights) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return jsonbValue(p)
}

func (p *ProductHighlights) Scan(value interface{}) error {
	return jsonbScan(value, p, "product_highlights")
}

// Campaign is one marketing campaign entry.
type Campaign struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	BannerURL string `json:"banner_url,omitempty"`
}

// Campaigns is the JSONB-persisted campaign list.
type Campaigns []Campaign

func (c Campaigns) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return jsonbValue(c)
}

func (c *Campaigns) Scan(value interface{}) error {
	return jsonbScan(value, c, "campaigns")
}
