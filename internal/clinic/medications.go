package clinic

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	applog "medtrack/internal/log"
	"medtrack/models"
)

// CreateMedicationInput carries the fields for a new medication.
type CreateMedicationInput struct {
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	StockAvailable   int    `json:"stock_available" validate:"min=0"`
	ReorderThreshold int    `json:"reorder_threshold" validate:"min=0"`
}

// UpdateMedicationInput applies only the supplied fields.
type UpdateMedicationInput struct {
	Name             *string `json:"name" validate:"omitempty,min=1"`
	Category         *string `json:"category" validate:"omitempty,min=1"`
	StockAvailable   *int    `json:"stock_available" validate:"omitempty,min=0"`
	ReorderThreshold *int    `json:"reorder_threshold" validate:"omitempty,min=0"`
}

// CreateMedication validates the input and inserts a new medication.
func (s *Service) CreateMedication(ctx context.Context, input CreateMedicationInput) (*models.Medication, error) {
	if err := wrapValidation(s.validate.Struct(input)); err != nil {
		return nil, err
	}

	medication := models.Medication{
		Name:             strings.TrimSpace(input.Name),
		Category:         strings.TrimSpace(input.Category),
		StockAvailable:   input.StockAvailable,
		ReorderThreshold: input.ReorderThreshold,
	}
	if medication.Name == "" || medication.Category == "" {
		return nil, invalidInput("name and category must not be blank")
	}

	if err := s.db.WithContext(ctx).Create(&medication).Error; err != nil {
		return nil, err
	}

	applog.Debug(ctx, "medication created", "id", medication.ID, "name", medication.Name)
	return &medication, nil
}

// Medications lists every medication in insertion order.
func (s *Service) Medications(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	if err := s.db.WithContext(ctx).Order("id").Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

// SearchMedications matches the term against name and category,
// case-insensitively. An empty or whitespace term returns every medication;
// this intentionally diverges from patient search (see SearchPatients).
func (s *Service) SearchMedications(ctx context.Context, term string) ([]models.Medication, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.Medications(ctx)
	}

	pattern := "%" + strings.ToLower(term) + "%"
	var medications []models.Medication
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern).
		Order("id").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

// LowStockMedications returns every medication at or below its reorder
// threshold.
func (s *Service) LowStockMedications(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	err := s.db.WithContext(ctx).
		Where("stock_available <= reorder_threshold").
		Order("id").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

// UpdateMedication applies the supplied fields and refreshes updated_at.
func (s *Service) UpdateMedication(ctx context.Context, id uint, input UpdateMedicationInput) (*models.Medication, error) {
	if err := wrapValidation(s.validate.Struct(input)); err != nil {
		return nil, err
	}

	var medication models.Medication
	if err := s.db.WithContext(ctx).First(&medication, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "medication", ID: id}
		}
		return nil, err
	}

	updates := map[string]any{"updated_at": s.now()}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.StockAvailable != nil {
		updates["stock_available"] = *input.StockAvailable
	}
	if input.ReorderThreshold != nil {
		updates["reorder_threshold"] = *input.ReorderThreshold
	}

	if err := s.db.WithContext(ctx).Model(&medication).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&medication, id).Error; err != nil {
		return nil, err
	}
	return &medication, nil
}

// DeleteMedication removes a medication unless usage history references it,
// in which case the delete is refused with a ConflictError.
func (s *Service) DeleteMedication(ctx context.Context, id uint) error {
	var medication models.Medication
	if err := s.db.WithContext(ctx).First(&medication, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "medication", ID: id}
		}
		return err
	}

	var references int64
	if err := s.db.WithContext(ctx).Model(&models.Usage{}).Where("medication_id = ?", id).Count(&references).Error; err != nil {
		return err
	}
	if references > 0 {
		return &ConflictError{
			Reason: "medication has associated usage records and cannot be deleted",
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.Medication{}, id).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "medication deleted", "id", id)
	return nil
}
