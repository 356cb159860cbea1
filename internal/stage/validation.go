package stage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataset"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/schema"
)

// Validation checks both ingested partitions against the declarative column
// schema. A mismatch is reported in the artifact, not raised; the
// orchestrator halts the run on an invalid result.
type Validation struct {
	cfg    entity.ValidationConfig
	store  *artifact.Store
	logger *slog.Logger
}

func NewValidation(cfg entity.ValidationConfig, store *artifact.Store, logger *slog.Logger) *Validation {
	return &Validation{cfg: cfg, store: store, logger: logger}
}

// Run returns a ValidationError only for I/O problems (unreadable partitions,
// unwritable report); schema mismatches come back as Valid == false.
func (s *Validation) Run(ingestion *entity.IngestionArtifact) (*entity.ValidationArtifact, error) {
	sc, err := schema.Load(s.cfg.SchemaPath)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	var problems []string
	for name, path := range map[string]string{
		"train": ingestion.TrainPath,
		"test":  ingestion.TestPath,
	} {
		frame, err := dataset.ReadCSV(path)
		if err != nil {
			return nil, &ValidationError{Err: fmt.Errorf("failed to read %s partition: %w", name, err)}
		}
		for _, p := range checkFrame(frame, sc) {
			problems = append(problems, fmt.Sprintf("%s partition: %s", name, p))
		}
	}

	art := &entity.ValidationArtifact{
		Valid:      len(problems) == 0,
		Message:    strings.Join(problems, "; "),
		ReportPath: s.cfg.ReportPath,
	}

	report := map[string]any{
		"validation_status": art.Valid,
		"message":           art.Message,
	}
	if err := s.store.WriteJSON(s.cfg.ReportPath, report); err != nil {
		return nil, &ValidationError{Err: err}
	}

	s.logger.Info("data validation complete", "valid", art.Valid, "message", art.Message)
	return art, nil
}

// checkFrame verifies column count and set, presence of every declared
// numerical and categorical column, and that nothing undeclared appears
// unless the schema marks it droppable.
func checkFrame(f *dataset.Frame, sc *schema.Schema) []string {
	var problems []string

	expected := len(sc.Columns)
	actual := 0
	for _, c := range f.Columns {
		if !sc.Droppable(c) {
			actual++
		}
	}
	if actual != expected {
		problems = append(problems, fmt.Sprintf("expected %d columns, found %d", expected, actual))
	}

	for _, c := range sc.NumericalColumns {
		if !f.HasColumn(c) {
			problems = append(problems, fmt.Sprintf("missing numerical column %q", c))
		}
	}
	for _, c := range sc.CategoricalColumns {
		if !f.HasColumn(c) {
			problems = append(problems, fmt.Sprintf("missing categorical column %q", c))
		}
	}
	for _, c := range f.Columns {
		if !sc.Declared(c) && !sc.Droppable(c) {
			problems = append(problems, fmt.Sprintf("unexpected column %q", c))
		}
	}
	return problems
}
