package clinic

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"medtrack/models"
)

// ReportFilter narrows aggregation queries. Bounds are inclusive and each is
// optional; a nil bound leaves that side open.
type ReportFilter struct {
	StartDate    *models.Date
	EndDate      *models.Date
	MedicationID *uint
}

// DateRange is the span of usage dates observed within a report row.
type DateRange struct {
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
}

// UsageReportRow aggregates the matching usage records of one medication.
type UsageReportRow struct {
	MedicationName string    `json:"medication_name"`
	TotalUsed      int       `json:"total_used"`
	UsageCount     int       `json:"usage_count"`
	DateRange      DateRange `json:"date_range"`
}

// MonthCount is one calendar-month bucket of a patient report.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// PatientReport summarises patients within an optional treatment-date range.
// PatientsByGender always carries both gender keys, zero-filled.
type PatientReport struct {
	TotalPatients    int                   `json:"total_patients"`
	PatientsByMonth  []MonthCount          `json:"patients_by_month"`
	PatientsByGender map[models.Gender]int `json:"patients_by_gender"`
}

type usageAggregate struct {
	MedicationName string
	TotalUsed      int
	UsageCount     int
	MinDate        models.Date
	MaxDate        models.Date
}

// UsageReport returns one row per medication with at least one usage record
// matching the filter, ordered by total quantity used descending.
// Medications without matching usage are omitted, not zero-filled.
func (s *Service) UsageReport(ctx context.Context, filter ReportFilter) ([]UsageReportRow, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Usage{}).
		Select("medications.name AS medication_name, " +
			"SUM(usages.quantity_used) AS total_used, " +
			"COUNT(usages.id) AS usage_count, " +
			"MIN(usages.date) AS min_date, " +
			"MAX(usages.date) AS max_date").
		Joins("JOIN medications ON medications.id = usages.medication_id")

	if filter.StartDate != nil {
		query = query.Where("usages.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("usages.date <= ?", *filter.EndDate)
	}
	if filter.MedicationID != nil {
		query = query.Where("usages.medication_id = ?", *filter.MedicationID)
	}

	var aggregates []usageAggregate
	err := query.
		Group("usages.medication_id, medications.name").
		Order("total_used DESC").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}

	rows := make([]UsageReportRow, 0, len(aggregates))
	for _, agg := range aggregates {
		rows = append(rows, UsageReportRow{
			MedicationName: agg.MedicationName,
			TotalUsed:      agg.TotalUsed,
			UsageCount:     agg.UsageCount,
			DateRange:      DateRange{Start: agg.MinDate, End: agg.MaxDate},
		})
	}
	return rows, nil
}

// PatientReport summarises patient records whose treatment date falls in the
// filter range: a total, per-month buckets in chronological order, and a
// gender split.
func (s *Service) PatientReport(ctx context.Context, filter ReportFilter) (*PatientReport, error) {
	scoped := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Patient{})
		if filter.StartDate != nil {
			query = query.Where("treatment_date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("treatment_date <= ?", *filter.EndDate)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, err
	}

	monthExpr := s.monthExpression("treatment_date")
	var months []MonthCount
	err := scoped().
		Select(fmt.Sprintf("%s AS month, COUNT(id) AS count", monthExpr)).
		Group(monthExpr).
		Order("month").
		Scan(&months).Error
	if err != nil {
		return nil, err
	}
	if months == nil {
		months = []MonthCount{}
	}

	type genderCount struct {
		Gender models.Gender
		Count  int
	}
	var genders []genderCount
	err = scoped().
		Select("gender, COUNT(id) AS count").
		Group("gender").
		Scan(&genders).Error
	if err != nil {
		return nil, err
	}

	byGender := map[models.Gender]int{
		models.GenderMale:   0,
		models.GenderFemale: 0,
	}
	for _, gc := range genders {
		byGender[gc.Gender] = gc.Count
	}

	return &PatientReport{
		TotalPatients:    int(total),
		PatientsByMonth:  months,
		PatientsByGender: byGender,
	}, nil
}

// monthExpression yields the SQL that buckets a date column by calendar
// month as "YYYY-MM". Postgres and sqlite spell this differently.
func (s *Service) monthExpression(column string) string {
	if s.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}
