package model

import (
	"errors"
	"math"
)

// GradientBoostingRegressor fits shallow regression trees to the
// residuals of the running prediction.
type GradientBoostingRegressor struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	Seed         int64

	init      float64
	trees     []*DecisionTree
	nFeatures int
}

func NewGradientBoostingRegressor() *GradientBoostingRegressor {
	return &GradientBoostingRegressor{NEstimators: 100, LearningRate: 0.1, MaxDepth: 3, Seed: 42}
}

func (g *GradientBoostingRegressor) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("boosting: empty X")
	}
	if len(y) != n {
		return errors.New("boosting: X and y length mismatch")
	}
	g.nFeatures = len(X[0])

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	g.init = sum / float64(n)

	current := make([]float64, n)
	for i := range current {
		current[i] = g.init
	}
	residual := make([]float64, n)
	g.trees = make([]*DecisionTree, 0, g.NEstimators)
	for m := 0; m < g.NEstimators; m++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}
		tree := NewRegressionTree(WithMaxDepth(g.MaxDepth), WithSeed(g.Seed+int64(m)))
		if err := tree.Fit(X, residual); err != nil {
			return err
		}
		for i, v := range tree.Predict(X) {
			current[i] += g.LearningRate * v
		}
		g.trees = append(g.trees, tree)
	}
	return nil
}

func (g *GradientBoostingRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = g.init
	}
	for _, t := range g.trees {
		for i, v := range t.Predict(X) {
			out[i] += g.LearningRate * v
		}
	}
	return out
}

func (g *GradientBoostingRegressor) FeatureImportances() []float64 {
	return forestImportances(g.trees, g.nFeatures)
}

// gbBinary boosts the log-odds of one positive class: trees are fit
// to the pseudo-residual y - sigmoid(F).
type gbBinary struct {
	init  float64
	trees []*DecisionTree
}

func fitBinaryBooster(X [][]float64, t []float64, nEstimators int, lr float64, maxDepth int, seed int64) (*gbBinary, error) {
	n := len(X)
	pos := 0.0
	for _, v := range t {
		pos += v
	}
	// Clamp the prior so a single-sided class keeps finite log-odds.
	p := math.Min(math.Max(pos/float64(n), 1e-6), 1-1e-6)
	b := &gbBinary{init: math.Log(p / (1 - p))}

	current := make([]float64, n)
	for i := range current {
		current[i] = b.init
	}
	residual := make([]float64, n)
	for m := 0; m < nEstimators; m++ {
		for i := range residual {
			residual[i] = t[i] - sigmoid(current[i])
		}
		tree := NewRegressionTree(WithMaxDepth(maxDepth), WithSeed(seed+int64(m)))
		if err := tree.Fit(X, residual); err != nil {
			return nil, err
		}
		for i, v := range tree.Predict(X) {
			current[i] += lr * v
		}
		b.trees = append(b.trees, tree)
	}
	return b, nil
}

func (b *gbBinary) score(X [][]float64, lr float64) []float64 {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = b.init
	}
	for _, t := range b.trees {
		for i, v := range t.Predict(X) {
			out[i] += lr * v
		}
	}
	return out
}

// GradientBoostingClassifier boosts the logistic loss; multi-class
// targets are handled one-vs-rest.
type GradientBoostingClassifier struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	Seed         int64

	classes   []float64
	boosters  []*gbBinary
	nFeatures int
}

func NewGradientBoostingClassifier() *GradientBoostingClassifier {
	return &GradientBoostingClassifier{NEstimators: 100, LearningRate: 0.1, MaxDepth: 3, Seed: 42}
}

func (g *GradientBoostingClassifier) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("boosting: empty X")
	}
	if len(y) != n {
		return errors.New("boosting: X and y length mismatch")
	}
	g.nFeatures = len(X[0])
	g.classes = uniqueSorted(y)
	if len(g.classes) < 2 {
		return errors.New("boosting: need at least two classes")
	}

	if len(g.classes) == 2 {
		t := make([]float64, n)
		for i := range y {
			if y[i] == g.classes[1] {
				t[i] = 1
			}
		}
		b, err := fitBinaryBooster(X, t, g.NEstimators, g.LearningRate, g.MaxDepth, g.Seed)
		if err != nil {
			return err
		}
		g.boosters = []*gbBinary{b}
		return nil
	}

	g.boosters = make([]*gbBinary, len(g.classes))
	for k, class := range g.classes {
		t := make([]float64, n)
		for i := range y {
			if y[i] == class {
				t[i] = 1
			}
		}
		b, err := fitBinaryBooster(X, t, g.NEstimators, g.LearningRate, g.MaxDepth, g.Seed+int64(k)*1000)
		if err != nil {
			return err
		}
		g.boosters[k] = b
	}
	return nil
}

func (g *GradientBoostingClassifier) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	if len(g.classes) == 2 {
		for i, s := range g.boosters[0].score(X, g.LearningRate) {
			if sigmoid(s) >= 0.5 {
				out[i] = g.classes[1]
			} else {
				out[i] = g.classes[0]
			}
		}
		return out
	}

	scores := make([][]float64, len(g.boosters))
	for k, b := range g.boosters {
		scores[k] = b.score(X, g.LearningRate)
	}
	for i := range X {
		best := 0
		for k := 1; k < len(g.boosters); k++ {
			if scores[k][i] > scores[best][i] {
				best = k
			}
		}
		out[i] = g.classes[best]
	}
	return out
}

func (g *GradientBoostingClassifier) Classes() []float64 { return g.classes }

func (g *GradientBoostingClassifier) FeatureImportances() []float64 {
	var trees []*DecisionTree
	for _, b := range g.boosters {
		trees = append(trees, b.trees...)
	}
	return forestImportances(trees, g.nFeatures)
}
