package clinic

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	applog "medtrack/internal/log"
	"medtrack/models"
)

// CreatePatientInput carries the fields for a new patient record.
type CreatePatientInput struct {
	Name          string        `json:"name" validate:"required"`
	Age           int           `json:"age" validate:"required,gt=0"`
	Gender        models.Gender `json:"gender" validate:"required,oneof=Male Female"`
	Address       string        `json:"address" validate:"required"`
	Contact       string        `json:"contact" validate:"required"`
	TreatmentDate models.Date   `json:"treatment_date"`
	Notes         *string       `json:"notes"`
}

// UpdatePatientInput applies only the supplied fields.
type UpdatePatientInput struct {
	Name          *string        `json:"name" validate:"omitempty,min=1"`
	Age           *int           `json:"age" validate:"omitempty,gt=0"`
	Gender        *models.Gender `json:"gender" validate:"omitempty,oneof=Male Female"`
	Address       *string        `json:"address" validate:"omitempty,min=1"`
	Contact       *string        `json:"contact" validate:"omitempty,min=1"`
	TreatmentDate *models.Date   `json:"treatment_date"`
	Notes         *string        `json:"notes"`
}

// CreatePatient validates the input and inserts a new patient.
func (s *Service) CreatePatient(ctx context.Context, input CreatePatientInput) (*models.Patient, error) {
	if err := wrapValidation(s.validate.Struct(input)); err != nil {
		return nil, err
	}
	if input.TreatmentDate.IsZero() {
		return nil, invalidInput("treatment_date is required")
	}

	patient := models.Patient{
		Name:          strings.TrimSpace(input.Name),
		Age:           input.Age,
		Gender:        input.Gender,
		Address:       strings.TrimSpace(input.Address),
		Contact:       strings.TrimSpace(input.Contact),
		TreatmentDate: input.TreatmentDate,
		Notes:         input.Notes,
	}
	if patient.Name == "" || patient.Address == "" || patient.Contact == "" {
		return nil, invalidInput("name, address and contact must not be blank")
	}

	if err := s.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	applog.Debug(ctx, "patient created", "id", patient.ID, "name", patient.Name)
	return &patient, nil
}

// Patients lists every patient in insertion order.
func (s *Service) Patients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := s.db.WithContext(ctx).Order("id").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// SearchPatients matches the term against name, contact and address,
// case-insensitively. An empty or whitespace term returns no patients,
// unlike medication search; the asymmetry is the recorded contract.
func (s *Service) SearchPatients(ctx context.Context, term string) ([]models.Patient, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Patient{}, nil
	}

	pattern := "%" + strings.ToLower(term) + "%"
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(contact) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern, pattern).
		Order("id").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// UpdatePatient applies the supplied fields and refreshes updated_at.
func (s *Service) UpdatePatient(ctx context.Context, id uint, input UpdatePatientInput) (*models.Patient, error) {
	if err := wrapValidation(s.validate.Struct(input)); err != nil {
		return nil, err
	}

	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "patient", ID: id}
		}
		return nil, err
	}

	updates := map[string]any{"updated_at": s.now()}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Age != nil {
		updates["age"] = *input.Age
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}
	if input.Address != nil {
		updates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.Contact != nil {
		updates["contact"] = strings.TrimSpace(*input.Contact)
	}
	if input.TreatmentDate != nil {
		updates["treatment_date"] = *input.TreatmentDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if err := s.db.WithContext(ctx).Model(&patient).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// DeletePatient removes a patient unconditionally and reports whether a row
// was actually removed. A missing id is not an error.
func (s *Service) DeletePatient(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.Patient{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		applog.Debug(ctx, "patient deleted", "id", id)
	}
	return result.RowsAffected > 0, nil
}
