package models

import "time"

// BusinessProfile is a stored business identity. A user may keep several;
// (user_id, business_name) is unique so resolve-or-create by name is stable.
// LogoURL holds whatever reference the profile edit path saved: an uploaded
// media path, an absolute URL, or a data URL. Invoice-level uploads never
// overwrite it.
type BusinessProfile struct {
	Id           uint      `json:"id" gorm:"primaryKey"`
	UserId       string    `json:"-" gorm:"index:idx_business_profiles_user_name,unique,priority:1;not null"`
	BusinessName string    `json:"business_name" gorm:"index:idx_business_profiles_user_name,unique,priority:2;not null"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Country      string    `json:"country"`
	LogoURL      string    `json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
}
