package models

import (
	"time"
)

// Gender is one of the two fixed patient gender values.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether the value is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Patient is an intake/treatment record. Deletion is unconditional; nothing
// references patients.
type Patient struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Age           int       `gorm:"not null" json:"age"`
	Gender        Gender    `gorm:"not null" json:"gender"`
	Address       string    `gorm:"not null" json:"address"`
	Contact       string    `gorm:"not null" json:"contact"`
	TreatmentDate Date      `gorm:"not null" json:"treatment_date"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
