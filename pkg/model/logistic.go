package model

import (
	"errors"
	"math"
	"sort"

	"github.com/tsakane28/notebook/pkg/optim"
	"github.com/tsakane28/notebook/pkg/stats"
)

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }

// LogisticRegression is a sigmoid classifier trained with full-batch
// gradient descent on standardized features. Multi-class targets are
// handled one-vs-rest.
type LogisticRegression struct {
	Lr     float64
	Epochs int

	scaler  *stats.StandardScaler
	classes []float64
	w       [][]float64 // one weight vector per one-vs-rest problem
	b       []float64
}

func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{Lr: 0.1, Epochs: 300}
}

func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("logistic: empty X")
	}
	if len(y) != n {
		return errors.New("logistic: X and y length mismatch")
	}

	m.classes = uniqueSorted(y)
	if len(m.classes) < 2 {
		return errors.New("logistic: need at least two classes")
	}

	m.scaler = stats.NewStandardScaler()
	Xs := m.scaler.FitTransform(X)

	if len(m.classes) == 2 {
		// Single sigmoid for the positive class.
		t := make([]float64, n)
		for i := range y {
			if y[i] == m.classes[1] {
				t[i] = 1
			}
		}
		w, b := m.fitBinary(Xs, t)
		m.w = [][]float64{w}
		m.b = []float64{b}
		return nil
	}

	m.w = make([][]float64, len(m.classes))
	m.b = make([]float64, len(m.classes))
	for k, class := range m.classes {
		t := make([]float64, n)
		for i := range y {
			if y[i] == class {
				t[i] = 1
			}
		}
		m.w[k], m.b[k] = m.fitBinary(Xs, t)
	}
	return nil
}

// fitBinary runs gradient descent on the binary cross-entropy loss.
func (m *LogisticRegression) fitBinary(X [][]float64, t []float64) ([]float64, float64) {
	n := len(X)
	p := len(X[0])
	w := make([]float64, p)
	b := 0.0
	opt := optim.NewSGD(m.Lr)

	for ep := 0; ep < m.Epochs; ep++ {
		gW := make([]float64, p)
		gb := 0.0
		for i, row := range X {
			sum := b
			for j, v := range row {
				sum += w[j] * v
			}
			// d(BCE)/d(logit) = p - y, averaged over the batch.
			d := (sigmoid(sum) - t[i]) / float64(n)
			for j, v := range row {
				gW[j] += d * v
			}
			gb += d
		}
		opt.Step(w, gW)
		b -= m.Lr * gb
	}
	return w, b
}

func (m *LogisticRegression) scores(X [][]float64) [][]float64 {
	Xs := m.scaler.Transform(X)
	out := make([][]float64, len(Xs))
	for i, row := range Xs {
		s := make([]float64, len(m.w))
		for k := range m.w {
			sum := m.b[k]
			for j, v := range row {
				sum += m.w[k][j] * v
			}
			s[k] = sigmoid(sum)
		}
		out[i] = s
	}
	return out
}

// Predict returns the class label with the highest sigmoid score
// (0.5 threshold for the binary case).
func (m *LogisticRegression) Predict(X [][]float64) []float64 {
	scores := m.scores(X)
	out := make([]float64, len(X))
	for i, s := range scores {
		if len(m.classes) == 2 {
			if s[0] >= 0.5 {
				out[i] = m.classes[1]
			} else {
				out[i] = m.classes[0]
			}
			continue
		}
		best := 0
		for k := 1; k < len(s); k++ {
			if s[k] > s[best] {
				best = k
			}
		}
		out[i] = m.classes[best]
	}
	return out
}

// Classes returns the class labels in ascending order.
func (m *LogisticRegression) Classes() []float64 { return m.classes }

// Coefficients returns one weight row per one-vs-rest problem, on the
// standardized feature scale.
func (m *LogisticRegression) Coefficients() [][]float64 { return m.w }

func uniqueSorted(y []float64) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, v := range y {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
