package clinic

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medtrack/models"
)

var testDBCounter atomic.Int64

// newTestService opens an isolated in-memory database, migrates the clinic
// schema and wraps it in a Service.
func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:clinic-test-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	if err := database.AutoMigrate(&models.Medication{}, &models.Patient{}, &models.Usage{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return NewService(database)
}

func mustCreateMedication(t *testing.T, svc *Service, name, category string, stock, threshold int) *models.Medication {
	t.Helper()
	medication, err := svc.CreateMedication(context.Background(), CreateMedicationInput{
		Name:             name,
		Category:         category,
		StockAvailable:   stock,
		ReorderThreshold: threshold,
	})
	if err != nil {
		t.Fatalf("create medication %q: %v", name, err)
	}
	return medication
}

func mustCreatePatient(t *testing.T, svc *Service, name string, gender models.Gender, treatmentDate models.Date) *models.Patient {
	t.Helper()
	patient, err := svc.CreatePatient(context.Background(), CreatePatientInput{
		Name:          name,
		Age:           30,
		Gender:        gender,
		Address:       "Jl. Melati 12",
		Contact:       "0812-555-0100",
		TreatmentDate: treatmentDate,
	})
	if err != nil {
		t.Fatalf("create patient %q: %v", name, err)
	}
	return patient
}

func mustRecordUsage(t *testing.T, svc *Service, medicationID uint, date models.Date, quantity int) *models.Usage {
	t.Helper()
	usage, err := svc.RecordUsage(context.Background(), RecordUsageInput{
		MedicationID: medicationID,
		Date:         date,
		QuantityUsed: quantity,
	})
	if err != nil {
		t.Fatalf("record usage of medication %d: %v", medicationID, err)
	}
	return usage
}
