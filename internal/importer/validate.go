package importer

import (
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/catalog"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema, cat *catalog.Catalog) []error {
	var errs []error

	if len(schema.Logs) == 0 {
		return []error{fmt.Errorf("import file contains no logs")}
	}

	seen := make(map[string]bool, len(schema.Logs))
	for i, l := range schema.Logs {
		label := fmt.Sprintf("logs[%d]", i)
		if l.Date == "" {
			errs = append(errs, fmt.Errorf("%s: date is required", label))
		} else if _, err := time.Parse("2006-01-02", l.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", label, l.Date))
		} else if seen[l.Date] {
			errs = append(errs, fmt.Errorf("%s: duplicate date %q", label, l.Date))
		} else {
			seen[l.Date] = true
		}

		if l.WeightKg <= 0 {
			errs = append(errs, fmt.Errorf("%s: weight_kg must be positive, got %.1f", label, l.WeightKg))
		}
		if l.IntakeKcal != nil && *l.IntakeKcal < 0 {
			errs = append(errs, fmt.Errorf("%s: intake_kcal must be >= 0, got %.0f", label, *l.IntakeKcal))
		}

		errs = append(errs, validateSessions(label+".planned_sessions", l.PlannedSessions, cat)...)
		errs = append(errs, validateSessions(label+".actual_sessions", l.ActualSessions, cat)...)
	}

	return errs
}

func validateSessions(label string, sessions []SessionImport, cat *catalog.Catalog) []error {
	var errs []error
	for i, s := range sessions {
		prefix := fmt.Sprintf("%s[%d]", label, i)
		if s.Type == "" {
			errs = append(errs, fmt.Errorf("%s: type is required", prefix))
			continue
		}
		if !cat.Valid(s.Type) {
			errs = append(errs, fmt.Errorf("%s: unknown training type %q", prefix, s.Type))
		}
		if s.DurationMin < 0 {
			errs = append(errs, fmt.Errorf("%s: duration_min must be >= 0, got %d", prefix, s.DurationMin))
		}
		if s.PerceivedIntensity != nil && (*s.PerceivedIntensity < 1 || *s.PerceivedIntensity > 10) {
			errs = append(errs, fmt.Errorf("%s: perceived_intensity must be 1-10, got %d", prefix, *s.PerceivedIntensity))
		}
	}
	return errs
}
