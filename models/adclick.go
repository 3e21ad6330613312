package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdClick is a best-effort click log row; writes never fail the request.
type AdClick struct {
	Id           uint           `json:"id" gorm:"primaryKey"`
	AdIdentifier string         `json:"ad_identifier" gorm:"size:128"`
	Placement    string         `json:"placement" gorm:"size:64"`
	TargetURL    string         `json:"target_url"`
	Metadata     datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at"`
}
