package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vladimiradmaev/health-tracker/internal/analysis"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// ReportService fetches a period of records and runs the analysis on it.
type ReportService struct {
	profiles ProfileStore
	glucose  GlucoseStore
	pressure PressureStore
	food     FoodStore
	loc      *time.Location
	now      func() time.Time
}

func NewReportService(profiles ProfileStore, glucose GlucoseStore, pressure PressureStore, food FoodStore, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		profiles: profiles,
		glucose:  glucose,
		pressure: pressure,
		food:     food,
		loc:      loc,
		now:      time.Now,
	}
}

// Location is the zone used for day grouping.
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// GetMedicalView loads the profile and its records in [start, end). The
// three collections are fetched concurrently.
func (s *ReportService) GetMedicalView(ctx context.Context, userID string, start, end time.Time) (*analysis.MedicalView, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		glucose  []*domain.GlucoseMeasurement
		pressure []*domain.PressureMeasurement
		food     []*domain.FoodEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		glucose, err = s.glucose.ListByUserAndRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		pressure, err = s.pressure.ListByUserAndRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		food, err = s.food.ListByUserAndRange(gctx, userID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.WithUser(userID).Debug("Medical view loaded",
		"glucose", len(glucose), "pressure", len(pressure), "food", len(food))
	return analysis.NewMedicalView(profile, glucose, pressure, food), nil
}

func (s *ReportService) GetSummary(ctx context.Context, userID string, start, end time.Time) (*analysis.Summary, error) {
	view, err := s.GetMedicalView(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	summary := view.GenerateSummary()
	logger.WithUser(userID).Info("Summary generated",
		"health_score", summary.HealthScore, "alerts", len(summary.Alerts))
	return &summary, nil
}

func (s *ReportService) GetDailyBreakdown(ctx context.Context, userID string, start, end time.Time) ([]analysis.DaySummary, error) {
	view, err := s.GetMedicalView(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return analysis.DailyBreakdown(view, s.loc), nil
}

func (s *ReportService) GetGlucoseTrend(ctx context.Context, userID string, start, end time.Time) (*analysis.GlucoseTrend, error) {
	if _, err := s.profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	ms, err := s.glucose.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	trend := analysis.AnalyzeGlucoseTrend(ms)
	return &trend, nil
}

func (s *ReportService) GetPressureTrend(ctx context.Context, userID string, start, end time.Time) (*analysis.PressureTrend, error) {
	if _, err := s.profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	ms, err := s.pressure.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	trend := analysis.AnalyzePressureTrend(ms)
	return &trend, nil
}

// GetReport builds the full exportable report for the period.
func (s *ReportService) GetReport(ctx context.Context, userID string, start, end time.Time) (*analysis.Report, error) {
	view, err := s.GetMedicalView(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	report := analysis.BuildReport(view, analysis.Period{Start: start, End: end}, s.loc, s.now())
	logger.WithUser(userID).Info("Report built", "days", report.Adherence.Days, "health_score", report.Summary.HealthScore)
	return &report, nil
}
