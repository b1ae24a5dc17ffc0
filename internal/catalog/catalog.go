// Package catalog loads the training-type reference data consumed by the
// load calculator and exposed through the training-types endpoint. The
// catalog is configuration, not code: types, categories, MET values and load
// scores live in catalog.yaml.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abramin/Victus-sub005/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

// Entry describes one training type.
type Entry struct {
	Type        string                  `yaml:"type" json:"type"`
	DisplayName string                  `yaml:"display_name" json:"displayName"`
	Category    domain.TrainingCategory `yaml:"category" json:"category"`
	METValue    float64                 `yaml:"met_value" json:"metValue"`
	LoadScore   float64                 `yaml:"load_score" json:"loadScore"`
}

type catalogFile struct {
	TrainingTypes []Entry `yaml:"training_types"`
}

// Catalog is an immutable, indexed set of training-type entries.
type Catalog struct {
	entries []Entry
	byType  map[string]Entry
}

// Parse decodes and validates a catalog payload.
func Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog: payload is empty")
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(file.TrainingTypes) == 0 {
		return nil, fmt.Errorf("catalog: no training types defined")
	}

	byType := make(map[string]Entry, len(file.TrainingTypes))
	restCount := 0
	for i, e := range file.TrainingTypes {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("catalog: entry %d (%s): %w", i+1, e.Type, err)
		}
		if _, dup := byType[e.Type]; dup {
			return nil, fmt.Errorf("catalog: duplicate type %q", e.Type)
		}
		if e.Category == domain.CategoryRest {
			restCount++
		}
		byType[e.Type] = e
	}
	if restCount != 1 {
		return nil, fmt.Errorf("catalog: exactly one rest entry required, found %d", restCount)
	}

	return &Catalog{entries: file.TrainingTypes, byType: byType}, nil
}

func validateEntry(e Entry) error {
	if e.Type == "" {
		return fmt.Errorf("type is required")
	}
	if e.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	switch e.Category {
	case domain.CategoryCardio, domain.CategoryStrength, domain.CategoryMobility,
		domain.CategorySport, domain.CategoryRest:
	default:
		return fmt.Errorf("unknown category %q", e.Category)
	}
	if e.METValue < 0 {
		return fmt.Errorf("MET value must be >= 0, got %g", e.METValue)
	}
	if e.LoadScore < 0 {
		return fmt.Errorf("load score must be >= 0, got %g", e.LoadScore)
	}
	if e.Category == domain.CategoryRest {
		if e.Type != domain.RestType {
			return fmt.Errorf("the rest entry must use type %q", domain.RestType)
		}
		if e.METValue != 0 || e.LoadScore != 0 {
			return fmt.Errorf("rest must have zero MET value and load score")
		}
	}
	return nil
}

// Load parses the embedded default catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Lookup returns the entry for a training type.
func (c *Catalog) Lookup(trainingType string) (Entry, bool) {
	e, ok := c.byType[trainingType]
	return e, ok
}

// Valid reports whether a training type exists in the catalog.
func (c *Catalog) Valid(trainingType string) bool {
	_, ok := c.byType[trainingType]
	return ok
}

// Entries returns the catalog in file order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
