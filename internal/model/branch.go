package model

import "time"

// Branch represents an engineering program track (e.g. Computer Science Engineering).
// Code is the external-facing identifier used in routing.
type Branch struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	IsActive   bool      `json:"isActive"`
	ComingSoon bool      `json:"comingSoon"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
