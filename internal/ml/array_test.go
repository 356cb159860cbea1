package ml

import (
	"bytes"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLabeledArrayRoundTrip(t *testing.T) {
	a := &LabeledArray{
		X: mat.NewDense(2, 3, []float64{0.1, -2.5, 1e-9, 3, 4, 5}),
		Y: []int{1, 0},
	}

	var buf bytes.Buffer
	if err := a.Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got LabeledArray
	if err := got.Load(&buf); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !mat.Equal(got.X, a.X) {
		t.Error("matrix should round trip losslessly")
	}
	if !reflect.DeepEqual(got.Y, a.Y) {
		t.Errorf("labels: got %v, want %v", got.Y, a.Y)
	}
}

func TestLabeledArraySaveLengthMismatch(t *testing.T) {
	a := &LabeledArray{X: mat.NewDense(2, 1, []float64{1, 2}), Y: []int{1}}
	if err := a.Save(&bytes.Buffer{}); err == nil {
		t.Error("expected error for label count mismatch")
	}
}

func TestLabeledArrayLoadEmpty(t *testing.T) {
	var a LabeledArray
	if err := a.Load(bytes.NewReader(nil)); err == nil {
		t.Error("expected error for empty input")
	}
}
