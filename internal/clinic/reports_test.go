package clinic

import (
	"context"
	"testing"
	"time"

	"medtrack/models"
)

func TestUsageReportAggregatesPerMedication(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	paracetamol := mustCreateMedication(t, svc, "Paracetamol 500mg", "Analgesic", 200, 20)
	amoxicillin := mustCreateMedication(t, svc, "Amoxicillin 250mg", "Antibiotic", 200, 20)
	mustCreateMedication(t, svc, "Cetirizine 10mg", "Antihistamine", 200, 20)

	mustRecordUsage(t, svc, paracetamol.ID, models.NewDate(2024, time.March, 1), 10)
	mustRecordUsage(t, svc, paracetamol.ID, models.NewDate(2024, time.March, 5), 15)
	mustRecordUsage(t, svc, amoxicillin.ID, models.NewDate(2024, time.March, 3), 40)

	rows, err := svc.UsageReport(ctx, ReportFilter{})
	if err != nil {
		t.Fatalf("usage report: %v", err)
	}

	// Cetirizine has no usage and must be omitted, not zero-filled.
	if len(rows) != 2 {
		t.Fatalf("expected 2 report rows, got %d", len(rows))
	}

	// Ordered by total used, descending.
	if rows[0].MedicationName != "Amoxicillin 250mg" || rows[0].TotalUsed != 40 || rows[0].UsageCount != 1 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].MedicationName != "Paracetamol 500mg" || rows[1].TotalUsed != 25 || rows[1].UsageCount != 2 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[1].DateRange.Start.String() != "2024-03-01" || rows[1].DateRange.End.String() != "2024-03-05" {
		t.Fatalf("unexpected date range: %+v", rows[1].DateRange)
	}
}

func TestUsageReportDateFilterIsInclusive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	medication := mustCreateMedication(t, svc, "Paracetamol 500mg", "Analgesic", 200, 20)
	mustRecordUsage(t, svc, medication.ID, models.NewDate(2024, time.February, 28), 5)
	mustRecordUsage(t, svc, medication.ID, models.NewDate(2024, time.March, 1), 10)
	mustRecordUsage(t, svc, medication.ID, models.NewDate(2024, time.March, 31), 15)
	mustRecordUsage(t, svc, medication.ID, models.NewDate(2024, time.April, 1), 20)

	start := models.NewDate(2024, time.March, 1)
	end := models.NewDate(2024, time.March, 31)
	rows, err := svc.UsageReport(ctx, ReportFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("usage report: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 report row, got %d", len(rows))
	}
	// Both boundary days count; the rows outside the range do not.
	if rows[0].TotalUsed != 25 || rows[0].UsageCount != 2 {
		t.Fatalf("inclusive bounds violated: %+v", rows[0])
	}
}

func TestUsageReportMedicationFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	paracetamol := mustCreateMedication(t, svc, "Paracetamol 500mg", "Analgesic", 200, 20)
	amoxicillin := mustCreateMedication(t, svc, "Amoxicillin 250mg", "Antibiotic", 200, 20)
	mustRecordUsage(t, svc, paracetamol.ID, models.NewDate(2024, time.March, 1), 10)
	mustRecordUsage(t, svc, amoxicillin.ID, models.NewDate(2024, time.March, 1), 20)

	rows, err := svc.UsageReport(ctx, ReportFilter{MedicationID: &paracetamol.ID})
	if err != nil {
		t.Fatalf("usage report: %v", err)
	}
	if len(rows) != 1 || rows[0].MedicationName != "Paracetamol 500mg" {
		t.Fatalf("medication filter failed: %+v", rows)
	}
}

func TestPatientReportMonthBucketsAndGenderSplit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreatePatient(t, svc, "Sari Dewi", models.GenderFemale, models.NewDate(2024, time.January, 15))
	mustCreatePatient(t, svc, "Budi Santoso", models.GenderMale, models.NewDate(2024, time.January, 20))
	mustCreatePatient(t, svc, "Ahmad Fauzi", models.GenderMale, models.NewDate(2024, time.February, 10))
	mustCreatePatient(t, svc, "Rina Wulandari", models.GenderFemale, models.NewDate(2024, time.February, 15))

	report, err := svc.PatientReport(ctx, ReportFilter{})
	if err != nil {
		t.Fatalf("patient report: %v", err)
	}

	if report.TotalPatients != 4 {
		t.Fatalf("TotalPatients = %d, want 4", report.TotalPatients)
	}
	if len(report.PatientsByMonth) != 2 {
		t.Fatalf("expected 2 month buckets, got %+v", report.PatientsByMonth)
	}
	if report.PatientsByMonth[0].Month != "2024-01" || report.PatientsByMonth[0].Count != 2 {
		t.Fatalf("unexpected first bucket: %+v", report.PatientsByMonth[0])
	}
	if report.PatientsByMonth[1].Month != "2024-02" || report.PatientsByMonth[1].Count != 2 {
		t.Fatalf("unexpected second bucket: %+v", report.PatientsByMonth[1])
	}
	if report.PatientsByGender[models.GenderMale] != 2 || report.PatientsByGender[models.GenderFemale] != 2 {
		t.Fatalf("unexpected gender split: %+v", report.PatientsByGender)
	}
}

func TestPatientReportDateFilterAndZeroFilledGenders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreatePatient(t, svc, "Sari Dewi", models.GenderFemale, models.NewDate(2024, time.January, 15))
	mustCreatePatient(t, svc, "Budi Santoso", models.GenderMale, models.NewDate(2024, time.March, 5))

	start := models.NewDate(2024, time.January, 1)
	end := models.NewDate(2024, time.January, 31)
	report, err := svc.PatientReport(ctx, ReportFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("patient report: %v", err)
	}

	if report.TotalPatients != 1 {
		t.Fatalf("TotalPatients = %d, want 1", report.TotalPatients)
	}
	if len(report.PatientsByMonth) != 1 || report.PatientsByMonth[0].Month != "2024-01" {
		t.Fatalf("empty months must be absent: %+v", report.PatientsByMonth)
	}
	// The male bucket has no rows in range but must still be present.
	male, ok := report.PatientsByGender[models.GenderMale]
	if !ok || male != 0 {
		t.Fatalf("gender split must be zero-filled, got %+v", report.PatientsByGender)
	}
	if report.PatientsByGender[models.GenderFemale] != 1 {
		t.Fatalf("unexpected female count: %+v", report.PatientsByGender)
	}
}

func TestPatientReportEmptyStore(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.PatientReport(context.Background(), ReportFilter{})
	if err != nil {
		t.Fatalf("patient report: %v", err)
	}
	if report.TotalPatients != 0 {
		t.Fatalf("TotalPatients = %d, want 0", report.TotalPatients)
	}
	if len(report.PatientsByMonth) != 0 {
		t.Fatalf("expected no month buckets, got %+v", report.PatientsByMonth)
	}
	if len(report.PatientsByGender) != 2 {
		t.Fatalf("gender split must always carry both keys, got %+v", report.PatientsByGender)
	}
}
