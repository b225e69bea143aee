package model

import (
	"errors"
	"math"
	"math/rand"
	"sync"
)

// forestFit grows nEstimators trees in parallel, each on a bootstrap
// sample drawn from a per-tree seeded source so results are
// reproducible regardless of scheduling.
func forestFit(X [][]float64, y []float64, nEstimators, maxDepth, maxFeatures int, seed int64, task treeTask) ([]*DecisionTree, error) {
	n := len(X)
	if n == 0 {
		return nil, errors.New("forest: empty X")
	}
	if len(y) != n {
		return nil, errors.New("forest: X and y length mismatch")
	}

	trees := make([]*DecisionTree, nEstimators)
	errCh := make(chan error, nEstimators)
	var wg sync.WaitGroup
	for i := 0; i < nEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			treeRand := rand.New(rand.NewSource(seed + int64(idx)))

			Xs := make([][]float64, n)
			ys := make([]float64, n)
			for j := 0; j < n; j++ {
				k := treeRand.Intn(n)
				Xs[j] = X[k]
				ys[j] = y[k]
			}

			var tree *DecisionTree
			opts := []TreeOption{
				WithMaxDepth(maxDepth),
				WithMaxFeatures(maxFeatures),
				WithSeed(seed + int64(idx)),
			}
			if task == taskClassification {
				tree = NewClassificationTree(opts...)
			} else {
				tree = NewRegressionTree(opts...)
			}
			if err := tree.Fit(Xs, ys); err != nil {
				errCh <- err
				return
			}
			trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return trees, nil
}

func forestImportances(trees []*DecisionTree, nFeatures int) []float64 {
	sum := make([]float64, nFeatures)
	for _, t := range trees {
		for j, v := range t.FeatureImportances() {
			sum[j] += v
		}
	}
	return normalizeImportances(sum)
}

// RandomForestRegressor averages bootstrap-sampled regression trees.
type RandomForestRegressor struct {
	NEstimators int
	MaxDepth    int
	MaxFeatures int // 0 => p/3, the usual regression heuristic
	Seed        int64

	trees     []*DecisionTree
	nFeatures int
}

func NewRandomForestRegressor() *RandomForestRegressor {
	return &RandomForestRegressor{NEstimators: 100, Seed: 42}
}

func (f *RandomForestRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("forest: empty X")
	}
	f.nFeatures = len(X[0])
	maxFeatures := f.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = f.nFeatures / 3
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}
	trees, err := forestFit(X, y, f.NEstimators, f.MaxDepth, maxFeatures, f.Seed, taskRegression)
	if err != nil {
		return err
	}
	f.trees = trees
	return nil
}

// Predict returns the mean prediction across trees.
func (f *RandomForestRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for _, t := range f.trees {
		for i, v := range t.Predict(X) {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(f.trees))
	}
	return out
}

func (f *RandomForestRegressor) FeatureImportances() []float64 {
	return forestImportances(f.trees, f.nFeatures)
}

// RandomForestClassifier takes the majority vote of bootstrap-sampled
// classification trees.
type RandomForestClassifier struct {
	NEstimators int
	MaxDepth    int
	MaxFeatures int // 0 => sqrt(p)
	Seed        int64

	trees     []*DecisionTree
	classes   []float64
	nFeatures int
}

func NewRandomForestClassifier() *RandomForestClassifier {
	return &RandomForestClassifier{NEstimators: 100, Seed: 42}
}

func (f *RandomForestClassifier) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("forest: empty X")
	}
	f.nFeatures = len(X[0])
	f.classes = uniqueSorted(y)
	maxFeatures := f.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = int(math.Sqrt(float64(f.nFeatures)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}
	trees, err := forestFit(X, y, f.NEstimators, f.MaxDepth, maxFeatures, f.Seed, taskClassification)
	if err != nil {
		return err
	}
	f.trees = trees
	return nil
}

// Predict returns the majority vote of all trees; ties resolve to the
// smallest label for determinism.
func (f *RandomForestClassifier) Predict(X [][]float64) []float64 {
	votes := make([]map[float64]int, len(X))
	for i := range votes {
		votes[i] = make(map[float64]int)
	}
	for _, t := range f.trees {
		for i, v := range t.Predict(X) {
			votes[i][v]++
		}
	}
	out := make([]float64, len(X))
	for i, count := range votes {
		best := math.Inf(1)
		bestCount := -1
		for _, class := range f.classes {
			if c := count[class]; c > bestCount {
				best, bestCount = class, c
			}
		}
		out[i] = best
	}
	return out
}

func (f *RandomForestClassifier) Classes() []float64 { return f.classes }

func (f *RandomForestClassifier) FeatureImportances() []float64 {
	return forestImportances(f.trees, f.nFeatures)
}
