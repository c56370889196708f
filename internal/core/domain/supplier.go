package domain

import (
	"strings"
	"time"
)

// Supplier is a vendor that items can be sourced from
type Supplier struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	ContactEmail       string    `json:"contact_email,omitempty"`
	PerformanceRating  *float64  `json:"performance_rating,omitempty"`
	LeadTimeDays       *int      `json:"lead_time_days,omitempty"`
	OnTimeDeliveryRate *float64  `json:"on_time_delivery_rate,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks the supplier's identity and rating ranges
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if s.PerformanceRating != nil && (*s.PerformanceRating < 0 || *s.PerformanceRating > 5) {
		return &ValidationError{Field: "performance_rating", Message: "must be between 0 and 5"}
	}
	if s.LeadTimeDays != nil && *s.LeadTimeDays < 0 {
		return &ValidationError{Field: "lead_time_days", Message: "cannot be negative"}
	}
	if s.OnTimeDeliveryRate != nil && (*s.OnTimeDeliveryRate < 0 || *s.OnTimeDeliveryRate > 1) {
		return &ValidationError{Field: "on_time_delivery_rate", Message: "must be between 0 and 1"}
	}
	return nil
}
