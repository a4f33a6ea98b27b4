package clinic

import (
	"context"

	"medtrack/models"
)

// DashboardSummary is the composite read backing the dashboard view.
// RecentUsages counts usage records created within the trailing 30 days,
// based on record creation time rather than the usage date.
type DashboardSummary struct {
	TotalMedications    int64               `json:"total_medications"`
	TotalPatients       int64               `json:"total_patients"`
	LowStockMedications int64               `json:"low_stock_medications"`
	RecentUsages        int64               `json:"recent_usages"`
	LowStockItems       []models.Medication `json:"low_stock_items"`
}

// Dashboard gathers the summary counts and the full low-stock list.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	if err := s.db.WithContext(ctx).Model(&models.Medication{}).Count(&summary.TotalMedications).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Patient{}).Count(&summary.TotalPatients).Error; err != nil {
		return nil, err
	}

	cutoff := s.now().AddDate(0, 0, -30)
	err := s.db.WithContext(ctx).
		Model(&models.Usage{}).
		Where("created_at >= ?", cutoff).
		Count(&summary.RecentUsages).Error
	if err != nil {
		return nil, err
	}

	lowStock, err := s.LowStockMedications(ctx)
	if err != nil {
		return nil, err
	}
	summary.LowStockItems = lowStock
	summary.LowStockMedications = int64(len(lowStock))

	return summary, nil
}
