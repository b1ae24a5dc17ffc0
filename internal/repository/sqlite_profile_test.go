package repository

import (
	"context"
	"testing"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_Get_DefaultSeededProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	profile, err := repo.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, "default", profile.ID)
	assert.Equal(t, domain.SexMale, profile.Sex)
	assert.Equal(t, "1990-01-01", profile.BirthDate.Format("2006-01-02"))
	assert.Equal(t, 175.0, profile.HeightCm)
	assert.Equal(t, domain.ActivityModerate, profile.ActivityLevel)
	assert.Equal(t, domain.FormulaMifflinStJeor, profile.BMRFormula)
	assert.True(t, profile.CreatedAt.IsZero())
}

func TestProfileRepo_Upsert_UpdatesProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	updated := &domain.UserProfile{
		ID:            domain.DefaultProfileID,
		Sex:           domain.SexFemale,
		BirthDate:     time.Date(1988, 6, 15, 0, 0, 0, 0, time.UTC),
		HeightCm:      168,
		ActivityLevel: domain.ActivityActive,
		BMRFormula:    domain.FormulaKatchMcArdle,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SexFemale, got.Sex)
	assert.Equal(t, "1988-06-15", got.BirthDate.Format("2006-01-02"))
	assert.Equal(t, 168.0, got.HeightCm)
	assert.Equal(t, domain.ActivityActive, got.ActivityLevel)
	assert.Equal(t, domain.FormulaKatchMcArdle, got.BMRFormula)
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestProfileRepo_Get_NotFoundWhenDefaultDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	_, err := db.Exec(`DELETE FROM user_profile WHERE id = 'default'`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
