package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registration is one attendee's conference registration. FeeDue is what the
// attendee owes; payments reference the registration they settle.
type Registration struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AttendeeName string          `gorm:"size:255;not null"`
	Email        string          `gorm:"size:255;not null;uniqueIndex"`
	Affiliation  string          `gorm:"size:255"`
	FeeDue       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Payments     []Payment       `gorm:"foreignKey:RegistrationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
