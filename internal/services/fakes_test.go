package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// fakeProfiles stores copies so services cannot mutate stored state without
// calling Update.
type fakeProfiles struct {
	mu      sync.Mutex
	byID    map[string]domain.UserProfile
	updates int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: make(map[string]domain.UserProfile)}
}

func (f *fakeProfiles) Create(_ context.Context, p *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, p *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return apperrors.NewNotFoundError("profile", p.ID)
	}
	f.byID[p.ID] = *p
	f.updates++
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("profile", id)
	}
	p.GlucoseLimits.Custom = append([]domain.CustomGlucoseRange(nil), p.GlucoseLimits.Custom...)
	return &p, nil
}

func (f *fakeProfiles) GetByTelegramID(_ context.Context, telegramID int64) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.TelegramID == telegramID {
			p := p
			return &p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("profile", fmt.Sprintf("telegram:%d", telegramID))
}

// fakeStore is an in-memory store for one record kind.
type fakeStore[T any] struct {
	mu       sync.Mutex
	items    map[string]*T
	resource string
	idOf     func(*T) string
	userOf   func(*T) string
	timeOf   func(*T) time.Time
	failList error
}

func (f *fakeStore[T]) Create(_ context.Context, v *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *v
	f.items[f.idOf(v)] = &c
	return nil
}

func (f *fakeStore[T]) Update(_ context.Context, v *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.idOf(v)
	if _, ok := f.items[id]; !ok {
		return apperrors.NewNotFoundError(f.resource, id)
	}
	c := *v
	f.items[id] = &c
	return nil
}

func (f *fakeStore[T]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return apperrors.NewNotFoundError(f.resource, id)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore[T]) GetByID(_ context.Context, id string) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(f.resource, id)
	}
	c := *v
	return &c, nil
}

func (f *fakeStore[T]) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	var out []*T
	for _, v := range f.items {
		ts := f.timeOf(v)
		if f.userOf(v) == userID && !ts.Before(start) && ts.Before(end) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return f.timeOf(out[i]).Before(f.timeOf(out[j])) })
	return out, nil
}

func newFakeGlucose() *fakeStore[domain.GlucoseMeasurement] {
	return &fakeStore[domain.GlucoseMeasurement]{
		items:    make(map[string]*domain.GlucoseMeasurement),
		resource: "glucose measurement",
		idOf:     func(m *domain.GlucoseMeasurement) string { return m.ID },
		userOf:   func(m *domain.GlucoseMeasurement) string { return m.UserID },
		timeOf:   func(m *domain.GlucoseMeasurement) time.Time { return m.Timestamp },
	}
}

func newFakePressure() *fakeStore[domain.PressureMeasurement] {
	return &fakeStore[domain.PressureMeasurement]{
		items:    make(map[string]*domain.PressureMeasurement),
		resource: "pressure measurement",
		idOf:     func(m *domain.PressureMeasurement) string { return m.ID },
		userOf:   func(m *domain.PressureMeasurement) string { return m.UserID },
		timeOf:   func(m *domain.PressureMeasurement) time.Time { return m.Timestamp },
	}
}

func newFakeFood() *fakeStore[domain.FoodEntry] {
	return &fakeStore[domain.FoodEntry]{
		items:    make(map[string]*domain.FoodEntry),
		resource: "food entry",
		idOf:     func(f *domain.FoodEntry) string { return f.ID },
		userOf:   func(f *domain.FoodEntry) string { return f.UserID },
		timeOf:   func(f *domain.FoodEntry) time.Time { return f.Timestamp },
	}
}

type fixture struct {
	profiles *fakeProfiles
	glucose  *fakeStore[domain.GlucoseMeasurement]
	pressure *fakeStore[domain.PressureMeasurement]
	food     *fakeStore[domain.FoodEntry]

	profileSvc     *ProfileService
	measurementSvc *MeasurementService
	reportSvc      *ReportService
}

func newFixture() *fixture {
	f := &fixture{
		profiles: newFakeProfiles(),
		glucose:  newFakeGlucose(),
		pressure: newFakePressure(),
		food:     newFakeFood(),
	}
	f.profileSvc = NewProfileService(f.profiles, &SequenceGenerator{Prefix: "user"})
	f.measurementSvc = NewMeasurementService(f.profiles, f.glucose, f.pressure, f.food, &SequenceGenerator{Prefix: "m"})
	f.reportSvc = NewReportService(f.profiles, f.glucose, f.pressure, f.food, time.UTC)
	return f
}
