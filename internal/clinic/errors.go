package clinic

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports malformed or missing input, caught before any
// write reaches storage.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NotFoundError reports that a referenced id does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// ConflictError reports a delete blocked by existing references.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// InsufficientStockError reports a usage quantity exceeding the available
// stock of the referenced medication.
type InsufficientStockError struct {
	MedicationID uint
	Available    int
	Requested    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for medication %d: available %d, requested %d",
		e.MedicationID, e.Available, e.Requested)
}

func invalidInput(reason string) error {
	return &ValidationError{Reason: reason}
}

// wrapValidation converts validator failures into a ValidationError and
// passes every other error through untouched.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &ValidationError{Reason: verrs.Error()}
	}
	return err
}
