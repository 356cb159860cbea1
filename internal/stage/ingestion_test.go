package stage

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestIngestion_SplitsAndPersists(t *testing.T) {
	run := testRun(t, t.TempDir())

	art := runIngestion(t, run)

	if art.TotalRows != 120 {
		t.Errorf("total rows: got %d", art.TotalRows)
	}
	if art.TrainRows+art.TestRows != art.TotalRows {
		t.Errorf("partitions lose rows: %d + %d != %d", art.TrainRows, art.TestRows, art.TotalRows)
	}
	if art.TestRows != 30 {
		t.Errorf("expected 30 test rows at ratio 0.25, got %d", art.TestRows)
	}

	for _, path := range []string{art.FeatureStorePath, art.TrainPath, art.TestPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file at %s: %v", path, err)
		}
	}
}

func TestIngestion_EmptyCollection(t *testing.T) {
	run := testRun(t, t.TempDir())
	source := &fakeSource{}

	_, err := NewIngestion(source, run.Ingestion, testLogger()).Run(context.Background())
	if err == nil {
		t.Fatal("expected error for empty collection")
	}
	var ingErr *IngestionError
	if !errors.As(err, &ingErr) {
		t.Errorf("expected IngestionError, got %T", err)
	}
}

func TestIngestion_SourceFailure(t *testing.T) {
	run := testRun(t, t.TempDir())
	source := &fakeSource{err: errors.New("connection refused")}

	_, err := NewIngestion(source, run.Ingestion, testLogger()).Run(context.Background())
	var ingErr *IngestionError
	if !errors.As(err, &ingErr) {
		t.Errorf("expected IngestionError, got %v", err)
	}
}
