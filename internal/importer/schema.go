// Package importer reads bulk daily-log export files (JSON) produced by
// other trackers, validates them against the training catalog, and converts
// them into domain logs for an all-or-nothing import.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a log import file.
type ImportSchema struct {
	Source string      `json:"source,omitempty"`
	Logs   []LogImport `json:"logs"`
}

// LogImport defines one daily log in the import file.
type LogImport struct {
	Date             string          `json:"date"`
	WeightKg         float64         `json:"weight_kg"`
	IntakeKcal       *float64        `json:"intake_kcal,omitempty"`
	BodyFatPercent   *float64        `json:"body_fat_percent,omitempty"`
	RestingHeartRate *int            `json:"resting_heart_rate,omitempty"`
	SleepHours       *float64        `json:"sleep_hours,omitempty"`
	Steps            *int            `json:"steps,omitempty"`
	ActiveCalories   *int            `json:"active_calories,omitempty"`
	PlannedSessions  []SessionImport `json:"planned_sessions,omitempty"`
	ActualSessions   []SessionImport `json:"actual_sessions,omitempty"`
}

// SessionImport defines one training session in the import file.
type SessionImport struct {
	Type               string `json:"type"`
	DurationMin        int    `json:"duration_min"`
	PerceivedIntensity *int   `json:"perceived_intensity,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// LoadSchema reads and parses an import file from disk.
func LoadSchema(filePath string) (*ImportSchema, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema parses import file content.
func ParseSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
