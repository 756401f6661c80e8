package models

import (
	"time"
)

// Upload is one stored proof-of-payment image. StoredName is the uuid-based
// filename on disk; FileName keeps the client's original name for display.
// RawText and the recognition columns are the audit trail of the suggestion
// run that produced the linked payment's prefill.
type Upload struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	RegistrationID uint     `gorm:"index;not null"`
	PaymentID      *uint    `gorm:"index"` // FK to payments.id (nullable)
	Payment        *Payment `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	FileName       string   `gorm:"size:255;not null"`
	StoredName     string   `gorm:"size:255;not null;uniqueIndex"`
	StorePath      string   `gorm:"column:store_path;size:512"`
	ContentType    string   `gorm:"size:128"`

	RawText    string `gorm:"type:text"`
	Source     string `gorm:"size:16"` // local | remote
	Confidence float64
	// Mark upload as failed for recognition so staff can review it later
	// instead of the record silently disappearing.
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
