package ml

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// OversampleMinority balances a skewed binary training set by duplicating
// randomly chosen minority-class rows until both classes have equal counts.
// Applied to the training partition only; the test partition is never
// resampled so evaluation stays comparable across models.
func OversampleMinority(x *mat.Dense, y []int, seed int64) (*mat.Dense, []int) {
	var zero, one []int
	for i, label := range y {
		if label == 0 {
			zero = append(zero, i)
		} else {
			one = append(one, i)
		}
	}

	minority, gap := one, len(zero)-len(one)
	if len(zero) < len(one) {
		minority, gap = zero, len(one)-len(zero)
	}
	if gap == 0 || len(minority) == 0 {
		return x, y
	}

	rows, cols := x.Dims()
	out := mat.NewDense(rows+gap, cols, nil)
	outY := make([]int, rows+gap)
	for i := 0; i < rows; i++ {
		out.SetRow(i, mat.Row(nil, i, x))
		outY[i] = y[i]
	}

	rnd := rand.New(rand.NewSource(seed))
	for k := 0; k < gap; k++ {
		src := minority[rnd.Intn(len(minority))]
		out.SetRow(rows+k, mat.Row(nil, src, x))
		outY[rows+k] = y[src]
	}
	return out, outY
}
