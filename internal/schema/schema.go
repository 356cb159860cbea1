// Package schema loads the declarative column-schema description that data
// validation and transformation check ingested data against. The schema is
// loaded once per stage and treated as read-only configuration.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema describes the expected shape of the ingested dataset.
type Schema struct {
	// Columns maps each expected column name to its kind ("int", "float",
	// "category").
	Columns map[string]string `yaml:"columns"`

	// NumericalColumns and CategoricalColumns must all be present in the
	// ingested data.
	NumericalColumns   []string `yaml:"numerical_columns"`
	CategoricalColumns []string `yaml:"categorical_columns"`

	// DropColumns may appear in the ingested data but are removed before
	// transformation.
	DropColumns []string `yaml:"drop_columns"`

	// NumFeatures are standard-scaled, MMColumns min-max-scaled; the rest of
	// the engineered features pass through unscaled.
	NumFeatures []string `yaml:"num_features"`
	MMColumns   []string `yaml:"mm_columns"`

	TargetColumn string `yaml:"target_column"`
}

func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	if err := s.check(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &s, nil
}

func (s *Schema) check() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("no columns declared")
	}
	if s.TargetColumn == "" {
		return fmt.Errorf("target_column is required")
	}
	if _, ok := s.Columns[s.TargetColumn]; !ok {
		return fmt.Errorf("target_column %q is not a declared column", s.TargetColumn)
	}
	for _, c := range s.NumericalColumns {
		if _, ok := s.Columns[c]; !ok {
			return fmt.Errorf("numerical column %q is not a declared column", c)
		}
	}
	for _, c := range s.CategoricalColumns {
		if _, ok := s.Columns[c]; !ok {
			return fmt.Errorf("categorical column %q is not a declared column", c)
		}
	}
	return nil
}

// Declared reports whether name is an expected column.
func (s *Schema) Declared(name string) bool {
	_, ok := s.Columns[name]
	return ok
}

// Droppable reports whether name may appear without being declared in Columns.
func (s *Schema) Droppable(name string) bool {
	for _, c := range s.DropColumns {
		if c == name {
			return true
		}
	}
	return false
}
