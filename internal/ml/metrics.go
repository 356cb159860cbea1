package ml

import "fmt"

// Metrics are the binary classification scores computed on the held-out test
// partition (label 1 is the positive class).
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	F1        float64 `json:"f1"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Evaluate computes classification metrics from true and predicted labels.
func Evaluate(yTrue, yPred []int) (Metrics, error) {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return Metrics{}, fmt.Errorf("label slices must be non-empty and equal length, got %d and %d", len(yTrue), len(yPred))
	}

	correct, tp, fp, fn := 0, 0, 0, 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
		switch {
		case yPred[i] == 1 && yTrue[i] == 1:
			tp++
		case yPred[i] == 1 && yTrue[i] == 0:
			fp++
		case yPred[i] == 0 && yTrue[i] == 1:
			fn++
		}
	}

	m := Metrics{Accuracy: float64(correct) / float64(len(yTrue))}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m, nil
}

// F1Score computes only the F1 metric, the score the promotion decision
// compares across models.
func F1Score(yTrue, yPred []int) (float64, error) {
	m, err := Evaluate(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return m.F1, nil
}
