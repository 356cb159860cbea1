package insurance

import "testing"

func TestFeatures_Encoding(t *testing.T) {
	r := sampleRecord() // Male, > 2 Years, damage Yes

	row, err := r.Features()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(row) != len(featureColumns) {
		t.Fatalf("expected %d features, got %d", len(featureColumns), len(row))
	}

	at := func(name string) float64 {
		for i, c := range featureColumns {
			if c == name {
				return row[i]
			}
		}
		t.Fatalf("no feature column %q", name)
		return 0
	}

	if at("Gender") != 1 {
		t.Error("Male should encode to 1")
	}
	if at("Vehicle_Age_lt_1_Year") != 0 || at("Vehicle_Age_gt_2_Years") != 1 {
		t.Error("> 2 Years should set only the gt_2_Years indicator")
	}
	if at("Vehicle_Damage_Yes") != 1 {
		t.Error("damage Yes should encode to 1")
	}
	if at("Age") != 44 || at("Annual_Premium") != 40454 {
		t.Error("numeric columns should pass through unchanged")
	}
}

func TestFeatures_BaselineVehicleAge(t *testing.T) {
	r := sampleRecord()
	r.Gender = "Female"
	r.VehicleAge = "1-2 Year"
	r.VehicleDamage = "No"

	row, err := r.Features()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// baseline category drops both indicators
	n := len(row)
	if row[0] != 0 || row[n-3] != 0 || row[n-2] != 0 || row[n-1] != 0 {
		t.Errorf("expected all indicators zero, got %v", row)
	}
}

func TestFeatures_UnknownCategory(t *testing.T) {
	for _, mutate := range []func(*Record){
		func(r *Record) { r.Gender = "Other" },
		func(r *Record) { r.VehicleAge = "5 Years" },
		func(r *Record) { r.VehicleDamage = "Maybe" },
	} {
		r := sampleRecord()
		mutate(&r)
		if _, err := r.Features(); err == nil {
			t.Errorf("expected error for %+v", r)
		}
	}
}

func TestFeaturize(t *testing.T) {
	x, err := Featurize([]Record{sampleRecord(), sampleRecord()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, cols := x.Dims()
	if rows != 2 || cols != len(featureColumns) {
		t.Errorf("got %dx%d matrix", rows, cols)
	}
}

func TestFeaturizeEmpty(t *testing.T) {
	if _, err := Featurize(nil); err == nil {
		t.Error("expected error for empty batch")
	}
}
