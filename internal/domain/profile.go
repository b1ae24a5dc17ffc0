package domain

import (
	"fmt"
	"time"
)

// UserProfile holds the measurements and preferences behind the formula TDEE
// baseline. Victus is a single-profile deployment; the fixed ID keeps the
// repositories honest about that.
type UserProfile struct {
	ID            string
	Sex           Sex
	BirthDate     time.Time
	HeightCm      float64
	ActivityLevel ActivityLevel
	BMRFormula    BMRFormula
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultProfileID is the row key for the single profile.
const DefaultProfileID = "default"

// Validate checks profile fields.
func (p *UserProfile) Validate() error {
	if p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("sex must be male or female, got %q", p.Sex)
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be positive, got %.1f", p.HeightCm)
	}
	if !ValidActivityLevels[string(p.ActivityLevel)] {
		return fmt.Errorf("unknown activity level %q", p.ActivityLevel)
	}
	if !ValidBMRFormulas[string(p.BMRFormula)] {
		return fmt.Errorf("unknown BMR formula %q", p.BMRFormula)
	}
	return nil
}

// AgeYears computes the profile's age in whole years at the given date.
func (p *UserProfile) AgeYears(asOf time.Time) int {
	years := asOf.Year() - p.BirthDate.Year()
	anniversary := time.Date(asOf.Year(), p.BirthDate.Month(), p.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
	if DateOf(asOf).Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
