package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

type ProfileService struct {
	profiles ProfileStore
	ids      IDGenerator
	locks    userLocks
}

func NewProfileService(profiles ProfileStore, ids IDGenerator) *ProfileService {
	return &ProfileService{profiles: profiles, ids: ids}
}

// CreateProfile assigns an id, validates and stores a new profile.
func (s *ProfileService) CreateProfile(ctx context.Context, params domain.ProfileParams) (*domain.UserProfile, error) {
	params.ID = s.ids.NewID()
	profile, err := domain.NewUserProfile(params)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	logger.WithUser(profile.ID).Info("Profile created", "telegram_id", profile.TelegramID)
	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *ProfileService) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	return s.profiles.GetByTelegramID(ctx, telegramID)
}

// modify loads the profile, applies fn and stores the result. Nothing is
// written when fn fails.
func (s *ProfileService) modify(ctx context.Context, id, action string, fn func(p *domain.UserProfile) error) (*domain.UserProfile, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(profile); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	logger.WithUser(id).Info("Profile updated", "action", action)
	return profile, nil
}

func (s *ProfileService) UpdateGlucoseLimits(ctx context.Context, id string, fasting, postPrandial domain.LimitRange) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "glucose_limits", func(p *domain.UserProfile) error {
		return p.UpdateGlucoseLimits(fasting, postPrandial)
	})
}

// SetCustomGlucoseRange adds or replaces a named glucose range.
func (s *ProfileService) SetCustomGlucoseRange(ctx context.Context, id, name string, limits domain.LimitRange) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "custom_glucose_range", func(p *domain.UserProfile) error {
		return p.UpdateCustomGlucoseRange(name, limits)
	})
}

func (s *ProfileService) RemoveCustomGlucoseRange(ctx context.Context, id, name string) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "remove_custom_glucose_range", func(p *domain.UserProfile) error {
		return p.RemoveCustomGlucoseRange(name)
	})
}

func (s *ProfileService) UpdatePressureLimits(ctx context.Context, id string, limits domain.PressureLimits) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "pressure_limits", func(p *domain.UserProfile) error {
		return p.UpdatePressureLimits(limits)
	})
}

// UpdateBody changes weight and height together; a zero argument keeps the
// current value.
func (s *ProfileService) UpdateBody(ctx context.Context, id string, weightKg, heightCm float64) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "body", func(p *domain.UserProfile) error {
		weight, height := p.WeightKg, p.HeightCm
		if weightKg != 0 {
			weight = weightKg
		}
		if heightCm != 0 {
			height = heightCm
		}
		// validate both before touching either
		if weight <= 0 {
			return domain.ErrWeightNotPositive
		}
		if height <= 0 {
			return domain.ErrHeightNotPositive
		}
		if err := p.UpdateWeight(weight); err != nil {
			return err
		}
		return p.UpdateHeight(height)
	})
}

func (s *ProfileService) UpdateFrequency(ctx context.Context, id string, f domain.MeasurementFrequency) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "frequency", func(p *domain.UserProfile) error {
		return p.UpdateMeasurementFrequency(f)
	})
}

// UpdatePersonal changes name, birth date and conditions. Empty values keep
// the current name and birth date; nil conditions keep the current list.
func (s *ProfileService) UpdatePersonal(ctx context.Context, id, name string, birthDate time.Time, conditions []string) (*domain.UserProfile, error) {
	return s.modify(ctx, id, "personal", func(p *domain.UserProfile) error {
		if name != "" {
			if err := p.UpdateName(name); err != nil {
				return err
			}
		}
		if !birthDate.IsZero() {
			if err := p.UpdateBirthDate(birthDate); err != nil {
				return err
			}
		}
		if conditions != nil {
			p.UpdateConditions(conditions)
		}
		return nil
	})
}
