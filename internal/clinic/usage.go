package clinic

import (
	"context"
	"errors"

	"gorm.io/gorm"

	applog "medtrack/internal/log"
	"medtrack/models"
)

// RecordUsageInput carries the fields for a new usage record.
type RecordUsageInput struct {
	MedicationID uint        `json:"medication_id" validate:"required"`
	Date         models.Date `json:"date"`
	QuantityUsed int         `json:"quantity_used" validate:"required,gt=0"`
	Notes        *string     `json:"notes"`
}

// RecordUsage inserts a usage record and decrements the medication's stock
// as one transaction. The decrement statement re-checks the stock level, so
// two concurrent recordings against the same medication can never jointly
// drive stock_available negative: the loser of the race sees zero affected
// rows and the whole transaction rolls back.
func (s *Service) RecordUsage(ctx context.Context, input RecordUsageInput) (*models.Usage, error) {
	if err := wrapValidation(s.validate.Struct(input)); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, invalidInput("date is required")
	}

	var usage models.Usage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var medication models.Medication
		if err := tx.First(&medication, input.MedicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "medication", ID: input.MedicationID}
			}
			return err
		}

		if input.QuantityUsed > medication.StockAvailable {
			return &InsufficientStockError{
				MedicationID: medication.ID,
				Available:    medication.StockAvailable,
				Requested:    input.QuantityUsed,
			}
		}

		usage = models.Usage{
			MedicationID: input.MedicationID,
			Date:         input.Date,
			QuantityUsed: input.QuantityUsed,
			Notes:        input.Notes,
		}
		if err := tx.Create(&usage).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Medication{}).
			Where("id = ? AND stock_available >= ?", medication.ID, input.QuantityUsed).
			Updates(map[string]any{
				"stock_available": gorm.Expr("stock_available - ?", input.QuantityUsed),
				"updated_at":      s.now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent recording drained the stock between our read
			// and the guarded decrement.
			return &InsufficientStockError{
				MedicationID: medication.ID,
				Available:    medication.StockAvailable,
				Requested:    input.QuantityUsed,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	applog.Debug(ctx, "usage recorded",
		"id", usage.ID,
		"medicationID", usage.MedicationID,
		"quantity", usage.QuantityUsed,
	)
	return &usage, nil
}

// Usages lists every usage record with its medication resolved, so callers
// can display the medication's current name.
func (s *Service) Usages(ctx context.Context) ([]models.Usage, error) {
	var usages []models.Usage
	err := s.db.WithContext(ctx).
		Preload("Medication").
		Order("id").
		Find(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}
