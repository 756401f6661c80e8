package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status lifecycle. A payment is created pending with OCR-suggested
// fields; staff verification moves it to verified or rejected.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// Payment records one proof-of-payment for a registration. The Suggested*
// columns are machine suggestions only and are kept as-entered even after
// verification; the Verified* columns are what staff confirmed and are the
// authoritative values.
type Payment struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	RegistrationID uint         `gorm:"index;not null"`
	Registration   Registration `gorm:"foreignKey:RegistrationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Status         string       `gorm:"size:16;not null;default:pending;index"`

	// Method is the winning parse dialect: "bank" or "cash".
	Method           string           `gorm:"size:16"`
	SuggestedAmount  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SuggestedRef     *string          `gorm:"size:64"`
	SuggestedPaidAt  *string          `gorm:"size:32"` // YYYY-MM-DDTHH:mm as recognized
	SuggestedBank    *string          `gorm:"size:64"`
	DateAmbiguous    bool             `gorm:"default:false"`
	SuggestionSource string           `gorm:"size:16"` // local | remote
	Confidence       float64
	ShouldManual     bool `gorm:"default:false"`

	VerifiedAmount *decimal.Decimal `gorm:"type:numeric(12,2)"`
	VerifiedRef    *string          `gorm:"size:64"`
	VerifiedPaidAt *time.Time
	VerifiedBank   *string `gorm:"size:64"`
	VerifiedBy     *uint   `gorm:"index"` // users.id of the verifying staff member
	VerifiedAt     *time.Time
	Note           string `gorm:"size:512"`
}
