package dataset

import (
	"math"
	"reflect"
	"strconv"
	"testing"
)

func numberedFrame(n int) *Frame {
	f := New([]string{"i"})
	for i := 0; i < n; i++ {
		f.Rows = append(f.Rows, []string{strconv.Itoa(i)})
	}
	return f
}

func TestSplit_ConservesRows(t *testing.T) {
	f := numberedFrame(101)
	train, test := f.Split(0.25, 22)

	if train.NumRows()+test.NumRows() != 101 {
		t.Errorf("rows lost: %d + %d != 101", train.NumRows(), test.NumRows())
	}

	seen := make(map[string]bool)
	for _, row := range append(append([][]string{}, train.Rows...), test.Rows...) {
		if seen[row[0]] {
			t.Fatalf("row %s appears twice", row[0])
		}
		seen[row[0]] = true
	}
	if len(seen) != 101 {
		t.Errorf("expected 101 distinct rows, got %d", len(seen))
	}
}

func TestSplit_TestShareWithinOneRow(t *testing.T) {
	for _, n := range []int{10, 37, 100} {
		f := numberedFrame(n)
		_, test := f.Split(0.25, 1)
		want := float64(n) * 0.25
		if math.Abs(float64(test.NumRows())-want) > 1 {
			t.Errorf("n=%d: test rows %d, want within one of %g", n, test.NumRows(), want)
		}
	}
}

func TestSplit_DeterministicForSeed(t *testing.T) {
	f := numberedFrame(50)
	train1, test1 := f.Split(0.3, 7)
	train2, test2 := f.Split(0.3, 7)

	if !reflect.DeepEqual(train1.Rows, train2.Rows) || !reflect.DeepEqual(test1.Rows, test2.Rows) {
		t.Error("same seed should give identical partitions")
	}
}
