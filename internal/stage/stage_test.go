package stage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
)

// Shared fixtures for the stage tests: an in-memory record source, an
// in-memory production slot, and a synthetic dataset where Vehicle_Damage
// fully determines the label.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	records []insurance.Record
	err     error
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]insurance.Record, error) {
	return f.records, f.err
}

type memStore struct {
	est       *ml.Estimator
	saves     int
	existsErr error
	loadErr   error
}

func (m *memStore) Exists(ctx context.Context) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.est != nil, nil
}

func (m *memStore) Load(ctx context.Context) (*ml.Estimator, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.est == nil {
		return nil, fmt.Errorf("no production model")
	}
	return m.est, nil
}

func (m *memStore) Save(ctx context.Context, est *ml.Estimator) error {
	m.est = est
	m.saves++
	return nil
}

// syntheticRecords builds an imbalanced set (roughly 30% positive) whose
// label is decided by Vehicle_Damage alone.
func syntheticRecords(n int) []insurance.Record {
	records := make([]insurance.Record, n)
	for i := range records {
		r := insurance.Record{
			Gender:             "Female",
			Age:                20 + i%40,
			DrivingLicense:     1,
			RegionCode:         float64(i % 50),
			PreviouslyInsured:  i % 2,
			VehicleAge:         "1-2 Year",
			VehicleDamage:      "No",
			AnnualPremium:      20000 + float64(i)*37,
			PolicySalesChannel: float64(i % 150),
			Vintage:            10 + i%280,
			Response:           0,
		}
		if i%2 == 0 {
			r.Gender = "Male"
		}
		if i%3 == 0 {
			r.VehicleAge = "< 1 Year"
		}
		if i%10 < 3 {
			r.VehicleDamage = "Yes"
			r.Response = 1
		}
		records[i] = r
	}
	return records
}

const testSchema = `
columns:
  Gender: category
  Age: int
  Driving_License: int
  Region_Code: float
  Previously_Insured: int
  Vehicle_Age: category
  Vehicle_Damage: category
  Annual_Premium: float
  Policy_Sales_Channel: float
  Vintage: int
  Response: int
numerical_columns:
  - Age
  - Vintage
  - Annual_Premium
categorical_columns:
  - Gender
  - Vehicle_Age
  - Vehicle_Damage
drop_columns:
  - id
  - _id
num_features:
  - Age
  - Vintage
mm_columns:
  - Annual_Premium
target_column: Response
`

// testRun lays out per-stage paths under dir the way a run directory is
// organized, with the schema file written alongside.
func testRun(t *testing.T, dir string) *entity.RunConfig {
	t.Helper()

	schemaPath := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0644); err != nil {
		t.Fatal(err)
	}

	return &entity.RunConfig{
		RunID: "test-run",
		Dir:   dir,
		Ingestion: entity.IngestionConfig{
			Collection:       "policies",
			FeatureStorePath: filepath.Join(dir, "ingestion", "feature_store.csv"),
			TrainPath:        filepath.Join(dir, "ingestion", "train.csv"),
			TestPath:         filepath.Join(dir, "ingestion", "test.csv"),
			SplitRatio:       0.25,
			Seed:             22,
		},
		Validation: entity.ValidationConfig{
			SchemaPath: schemaPath,
			ReportPath: filepath.Join(dir, "validation", "report.json"),
		},
		Transformation: entity.TransformationConfig{
			PreprocessorPath: filepath.Join(dir, "transformation", "preprocessor.json"),
			TrainArrayPath:   filepath.Join(dir, "transformation", "train.csv"),
			TestArrayPath:    filepath.Join(dir, "transformation", "test.csv"),
			Seed:             22,
		},
		Trainer: entity.TrainerConfig{
			ModelPath: filepath.Join(dir, "trainer", "model.json.gz"),
			Forest: ml.ForestConfig{
				NEstimators: 15,
				MaxDepth:    6,
				Criterion:   "gini",
				Seed:        101,
			},
			MinAccuracy: 0.6,
		},
		Evaluation: entity.EvaluationConfig{
			MinImprovement: 0.02,
		},
		Pusher: entity.PusherConfig{Bucket: "models", Key: "model.json.gz"},
	}
}

// runIngestion executes the ingestion stage over the synthetic dataset.
func runIngestion(t *testing.T, run *entity.RunConfig) *entity.IngestionArtifact {
	t.Helper()
	source := &fakeSource{records: syntheticRecords(120)}
	art, err := NewIngestion(source, run.Ingestion, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("ingestion: %v", err)
	}
	return art
}

// runThroughTrainer executes ingest, transform and train, returning the
// artifacts the later stages consume.
func runThroughTrainer(t *testing.T, run *entity.RunConfig) (*entity.IngestionArtifact, *entity.TrainerArtifact) {
	t.Helper()
	store := artifact.NewStore(testLogger())

	ingestionArt := runIngestion(t, run)

	transformationArt, err := NewTransformation(run.Transformation, run.Validation.SchemaPath, store, testLogger()).Run(ingestionArt)
	if err != nil {
		t.Fatalf("transformation: %v", err)
	}

	trainerArt, err := NewTrainer(run.Trainer, store, testLogger()).Run(transformationArt)
	if err != nil {
		t.Fatalf("trainer: %v", err)
	}
	return ingestionArt, trainerArt
}
