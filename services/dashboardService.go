package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"context"
	"math"
	"time"
)

type DashboardService struct {
	store    CountStore
	notifier notify.Notifier
	now      func() time.Time
}

func NewDashboardService(store CountStore, notifier notify.Notifier) *DashboardService {
	return &DashboardService{store: store, notifier: notifier, now: time.Now}
}

// Metrics returns every dashboard figure in display order. Figures without a
// backing table are reported with Available false.
func (s *DashboardService) Metrics(ctx context.Context) ([]models.Metric, error) {
	counts, err := s.store.Counts(ctx, s.now())
	if err != nil {
		return listed[models.Metric](ctx, s.notifier, "Failed to fetch dashboard metrics", nil, err)
	}
	return buildMetrics(counts), nil
}

func buildMetrics(c models.DashboardCounts) []models.Metric {
	count := func(name string, v int64) models.Metric {
		return models.Metric{Name: name, Value: float64(v), Available: true}
	}
	icu := models.Metric{Name: models.MetricICUOccupancy}
	if c.ICUBeds > 0 {
		icu.Value = math.Round(float64(c.ICUBedsOccupied)/float64(c.ICUBeds)*1000) / 10
		icu.Available = true
	}
	return []models.Metric{
		count(models.MetricTotalPatients, c.Patients),
		count(models.MetricBedsOccupied, c.BedsOccupied),
		count(models.MetricBedsAvailable, c.BedsAvailable),
		count(models.MetricAppointmentsToday, c.AppointmentsToday),
		count(models.MetricDoctorsOnDuty, c.DoctorsOnDuty),
		count(models.MetricNursesOnDuty, c.NursesOnDuty),
		count(models.MetricLabTests, c.LabTests),
		count(models.MetricMedications, c.Medications),
		icu,
		{Name: models.MetricEmergencyCases},
		{Name: models.MetricRevenueThisMonth},
		{Name: models.MetricPendingBills},
	}
}
