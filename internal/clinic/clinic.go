// Package clinic implements the clinic's core operations: medication and
// patient records, usage recording with its stock-adjustment guarantee, and
// the reporting aggregates. All state lives in the injected database handle;
// the package holds no globals so tests can run against isolated instances.
package clinic

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Service exposes every clinic operation against a single storage handle.
type Service struct {
	db       *gorm.DB
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds a Service around the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}
