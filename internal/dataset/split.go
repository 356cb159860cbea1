package dataset

import (
	"math"
	"math/rand"
)

// Split shuffles the rows with the given seed and partitions them into train
// and test frames. testRatio is the test share; the test row count is within
// one row of len(rows)*testRatio. The receiver is not modified.
func (f *Frame) Split(testRatio float64, seed int64) (train, test *Frame) {
	n := len(f.Rows)
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Round(float64(n) * testRatio))

	train = New(f.Columns)
	test = New(f.Columns)
	for i, idx := range perm {
		if i < nTest {
			test.Rows = append(test.Rows, f.Rows[idx])
		} else {
			train.Rows = append(train.Rows, f.Rows[idx])
		}
	}
	return train, test
}
