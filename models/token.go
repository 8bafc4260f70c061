package models

import "time"

// VerificationEmailToken rows are never deleted; expiry is the only
// thing that invalidates them.
type VerificationEmailToken struct {
	ID      uint      `json:"id" gorm:"primarykey"`
	Token   string    `json:"token" gorm:"uniqueIndex;not null"`
	Email   string    `json:"email" gorm:"not null"`
	Expires time.Time `json:"expires" gorm:"not null"`
}

// ForgotPassword tracks a recovery token through its phases:
// request -> first used -> final used. FinalUsed is a one-way latch,
// a token that reaches it can never be consumed again.
type ForgotPassword struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	Token          string    `json:"token" gorm:"uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"not null"`
	Expires        time.Time `json:"expires" gorm:"not null"`
	FirstUsed      bool      `json:"first_used" gorm:"default:false"`
	FinalUsed      bool      `json:"final_used" gorm:"default:false"`
	IPRequest      string    `json:"ip_request"`
	BrowserRequest string    `json:"browser_request"`
	CountryRequest string    `json:"country_request"`
	IPChanged      string    `json:"ip_changed"`
	BrowserChanged string    `json:"browser_changed"`
	CountryChanged string    `json:"country_changed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
