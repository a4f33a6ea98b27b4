package models

import (
	"time"
)

// Medication is a stocked item in the clinic inventory. StockAvailable is
// never negative: it only changes through an explicit update or the guarded
// decrement performed when a usage is recorded.
type Medication struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Category         string    `gorm:"not null" json:"category"`
	StockAvailable   int       `gorm:"not null" json:"stock_available"`
	ReorderThreshold int       `gorm:"not null" json:"reorder_threshold"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LowStock reports whether the medication has reached its reorder threshold.
// The boundary is inclusive: stock equal to the threshold counts as low.
func (m Medication) LowStock() bool {
	return m.StockAvailable <= m.ReorderThreshold
}
