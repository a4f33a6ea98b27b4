// Package mock provides a seeded in-memory database so the server can run
// without postgres during local development.
package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "medtrack/internal/log"
	"medtrack/models"
)

// New returns an in-memory sqlite database seeded with representative
// clinic data.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:medtrack-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Medication{},
		&models.Patient{},
		&models.Usage{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// seed inserts a small consistent data set: stock levels already reflect the
// seeded usage history, and one medication sits below its reorder threshold
// so the dashboard alert path has something to show.
func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	note := func(s string) *string { return &s }

	medications := []models.Medication{
		{Name: "Paracetamol 500mg", Category: "Analgesic", StockAvailable: 140, ReorderThreshold: 50},
		{Name: "Amoxicillin 250mg", Category: "Antibiotic", StockAvailable: 30, ReorderThreshold: 40},
		{Name: "Cetirizine 10mg", Category: "Antihistamine", StockAvailable: 75, ReorderThreshold: 25},
	}
	if err := database.WithContext(ctx).Create(&medications).Error; err != nil {
		return err
	}

	patients := []models.Patient{
		{
			Name:          "Sari Dewi",
			Age:           34,
			Gender:        models.GenderFemale,
			Address:       "Jl. Melati 12",
			Contact:       "0812-555-0101",
			TreatmentDate: models.NewDate(2024, time.January, 15),
			Notes:         note("Follow-up in two weeks"),
		},
		{
			Name:          "Budi Santoso",
			Age:           52,
			Gender:        models.GenderMale,
			Address:       "Jl. Kenanga 3",
			Contact:       "0812-555-0102",
			TreatmentDate: models.NewDate(2024, time.January, 20),
		},
		{
			Name:          "Ahmad Fauzi",
			Age:           27,
			Gender:        models.GenderMale,
			Address:       "Jl. Anggrek 8",
			Contact:       "0812-555-0103",
			TreatmentDate: models.NewDate(2024, time.February, 10),
		},
	}
	if err := database.WithContext(ctx).Create(&patients).Error; err != nil {
		return err
	}

	usages := []models.Usage{
		{
			MedicationID: medications[0].ID,
			Date:         models.NewDate(2024, time.January, 16),
			QuantityUsed: 10,
			Notes:        note("Dispensed for fever"),
		},
		{
			MedicationID: medications[1].ID,
			Date:         models.NewDate(2024, time.January, 21),
			QuantityUsed: 20,
		},
	}
	if err := database.WithContext(ctx).Create(&usages).Error; err != nil {
		return err
	}

	return nil
}
