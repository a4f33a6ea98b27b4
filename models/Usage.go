package models

import (
	"time"
)

// Usage records a quantity of a medication being consumed on a given date.
// Usage rows are immutable once created and block deletion of the medication
// they reference. There is no UpdatedAt column on purpose.
type Usage struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	MedicationID uint        `gorm:"not null;index" json:"medication_id"`
	Medication   *Medication `gorm:"foreignKey:MedicationID" json:"-"`
	Date         Date        `gorm:"not null" json:"date"`
	QuantityUsed int         `gorm:"not null" json:"quantity_used"`
	Notes        *string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time   `json:"created_at"`
}
