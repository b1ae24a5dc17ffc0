package service

import (
	"context"
	"time"

	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
	now      func() time.Time
}

// NewProfileService creates the profile use cases.
func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles, now: func() time.Time { return time.Now().UTC() }}
}

func (s *profileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

func (s *profileService) Update(ctx context.Context, req contract.UpdateProfileRequest) (*domain.UserProfile, error) {
	birthDate, err := domain.ParseDate(req.BirthDate)
	if err != nil {
		return nil, Validationf("%v", err)
	}

	existing, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}

	formula := domain.BMRFormula(req.BMRFormula)
	if req.BMRFormula == "" {
		formula = existing.BMRFormula
	}

	now := s.now()
	profile := &domain.UserProfile{
		ID:            domain.DefaultProfileID,
		Sex:           domain.Sex(req.Sex),
		BirthDate:     birthDate,
		HeightCm:      req.HeightCm,
		ActivityLevel: domain.ActivityLevel(req.ActivityLevel),
		BMRFormula:    formula,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     now,
	}
	if err := profile.Validate(); err != nil {
		return nil, Validationf("%v", err)
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
