package service

import (
	"context"
	"testing"

	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetSeededDefaults(t *testing.T) {
	e := newEnv(t)
	svc := NewProfileService(e.profiles)

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfileID, profile.ID)
	assert.Equal(t, domain.SexMale, profile.Sex)
	assert.Equal(t, domain.FormulaMifflinStJeor, profile.BMRFormula)
}

func TestProfileService_Update(t *testing.T) {
	e := newEnv(t)
	svc := NewProfileService(e.profiles)
	ctx := context.Background()

	updated, err := svc.Update(ctx, contract.UpdateProfileRequest{
		Sex:           "female",
		BirthDate:     "1992-06-15",
		HeightCm:      168,
		ActivityLevel: "active",
		BMRFormula:    "katch_mcardle",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SexFemale, updated.Sex)
	assert.Equal(t, 168.0, updated.HeightCm)
	assert.Equal(t, domain.FormulaKatchMcArdle, updated.BMRFormula)

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SexFemale, stored.Sex)
	assert.Equal(t, "1992-06-15", domain.FormatDate(stored.BirthDate))
}

func TestProfileService_Update_KeepsFormulaWhenOmitted(t *testing.T) {
	e := newEnv(t)
	svc := NewProfileService(e.profiles)
	ctx := context.Background()

	_, err := svc.Update(ctx, contract.UpdateProfileRequest{
		Sex:           "male",
		BirthDate:     "1990-01-01",
		HeightCm:      180,
		ActivityLevel: "moderate",
		BMRFormula:    "harris_benedict",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, contract.UpdateProfileRequest{
		Sex:           "male",
		BirthDate:     "1990-01-01",
		HeightCm:      182,
		ActivityLevel: "moderate",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormulaHarrisBenedict, updated.BMRFormula)
	assert.Equal(t, 182.0, updated.HeightCm)
}

func TestProfileService_Update_Invalid(t *testing.T) {
	e := newEnv(t)
	svc := NewProfileService(e.profiles)

	_, err := svc.Update(context.Background(), contract.UpdateProfileRequest{
		Sex:           "other",
		BirthDate:     "1990-01-01",
		HeightCm:      180,
		ActivityLevel: "moderate",
	})
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeValidation, se.Code)
}

func TestCatalogService_List(t *testing.T) {
	e := newEnv(t)
	svc := NewCatalogService(e.cat)

	entries := svc.List(context.Background())
	require.NotEmpty(t, entries)

	types := make(map[string]bool, len(entries))
	for _, entry := range entries {
		types[entry.Type] = true
	}
	assert.True(t, types["running"])
	assert.True(t, types["rest"])
}
