package models

import "time"

// Client is a billable party owned by one user. Lookups are always scoped by
// UserId; a foreign id resolves as not-found rather than leaking existence.
type Client struct {
	Id        uint      `json:"id" gorm:"primaryKey"`
	UserId    string    `json:"-" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}
