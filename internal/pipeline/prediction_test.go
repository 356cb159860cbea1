package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestPredictor_ScoresWithProductionModel(t *testing.T) {
	cfg := testConfig(t)
	records := syntheticRecords(120)
	prod := &memStore{}
	ctx := context.Background()

	if _, err := NewTraining(cfg, &fakeSource{records: records}, prod, testLogger()).Run(ctx); err != nil {
		t.Fatalf("training: %v", err)
	}

	predictor := NewPredictor(prod, testLogger())

	// the label is decided by Vehicle_Damage, so a training row must come
	// back with its own label
	damaged := records[0] // i%10 == 0 rows carry damage and label 1
	got, err := predictor.Predict(ctx, damaged)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != damaged.Response {
		t.Errorf("got label %d, want %d", got, damaged.Response)
	}

	undamaged := records[5]
	got, err = predictor.Predict(ctx, undamaged)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != undamaged.Response {
		t.Errorf("got label %d, want %d", got, undamaged.Response)
	}
}

func TestPredictor_NoProductionModel(t *testing.T) {
	predictor := NewPredictor(&memStore{}, testLogger())

	_, err := predictor.Predict(context.Background(), syntheticRecords(1)[0])
	if err == nil {
		t.Fatal("expected error without a production model")
	}
	var predErr *PredictionError
	if !errors.As(err, &predErr) {
		t.Errorf("expected PredictionError, got %T", err)
	}
}

func TestPredictor_PicksUpLateDeployment(t *testing.T) {
	cfg := testConfig(t)
	prod := &memStore{}
	ctx := context.Background()
	predictor := NewPredictor(prod, testLogger())
	records := syntheticRecords(120)

	// no model yet: the failure must not be cached
	if _, err := predictor.Predict(ctx, records[0]); err == nil {
		t.Fatal("expected error before deployment")
	}

	if _, err := NewTraining(cfg, &fakeSource{records: records}, prod, testLogger()).Run(ctx); err != nil {
		t.Fatalf("training: %v", err)
	}

	if _, err := predictor.Predict(ctx, records[0]); err != nil {
		t.Errorf("predictor should see the new deployment, got %v", err)
	}
}

func TestPredictor_RejectsMalformedRecord(t *testing.T) {
	cfg := testConfig(t)
	prod := &memStore{}
	ctx := context.Background()
	records := syntheticRecords(120)

	if _, err := NewTraining(cfg, &fakeSource{records: records}, prod, testLogger()).Run(ctx); err != nil {
		t.Fatalf("training: %v", err)
	}

	bad := records[0]
	bad.VehicleAge = "brand new"
	if _, err := NewPredictor(prod, testLogger()).Predict(ctx, bad); err == nil {
		t.Error("expected error for unknown category value")
	}
}
