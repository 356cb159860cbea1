package schema

import (
	"os"
	"path/filepath"
	"testing"
)

const validSchema = `
columns:
  Gender: category
  Age: int
  Response: int
numerical_columns:
  - Age
categorical_columns:
  - Gender
drop_columns:
  - id
target_column: Response
`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeSchema(t, validSchema))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Columns) != 3 {
		t.Errorf("expected 3 columns, got %d", len(s.Columns))
	}
	if !s.Declared("Age") {
		t.Error("Age should be declared")
	}
	if s.Declared("id") {
		t.Error("id should not be declared")
	}
	if !s.Droppable("id") {
		t.Error("id should be droppable")
	}
	if s.Droppable("Age") {
		t.Error("Age should not be droppable")
	}
}

func TestLoadRejectsMissingTarget(t *testing.T) {
	_, err := Load(writeSchema(t, `
columns:
  Age: int
numerical_columns:
  - Age
`))
	if err == nil {
		t.Error("expected error for missing target_column")
	}
}

func TestLoadRejectsUndeclaredNumericalColumn(t *testing.T) {
	_, err := Load(writeSchema(t, `
columns:
  Response: int
numerical_columns:
  - Age
target_column: Response
`))
	if err == nil {
		t.Error("expected error for numerical column not in columns")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
