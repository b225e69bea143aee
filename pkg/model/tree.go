package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

type treeTask int

const (
	taskRegression treeTask = iota
	taskClassification
)

const minGain = 1e-12

// DecisionTree is a CART tree used for both regression (variance
// criterion) and classification (gini). It is the base learner for
// the forest and boosting ensembles.
type DecisionTree struct {
	// Hyperparameters
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => use all features
	Seed            int64

	// internals
	task        treeTask
	root        *dtNode
	classes     []float64
	classIndex  map[float64]int
	nFeatures   int
	nSamples    int
	importances []float64
}

type dtNode struct {
	leaf      bool
	feature   int
	threshold float64 // x <= threshold goes left; NaN always goes right
	left      *dtNode
	right     *dtNode
	value     float64 // mean (regression) or majority class label
}

// TreeOption is functional config for DecisionTree.
type TreeOption func(*DecisionTree)

func WithMaxDepth(d int) TreeOption        { return func(t *DecisionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *DecisionTree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *DecisionTree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) TreeOption     { return func(t *DecisionTree) { t.MaxFeatures = k } }
func WithSeed(seed int64) TreeOption       { return func(t *DecisionTree) { t.Seed = seed } }

func newTree(task treeTask, opts []TreeOption) *DecisionTree {
	t := &DecisionTree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Seed:            42,
		task:            task,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// NewRegressionTree returns a CART regressor with sensible defaults.
func NewRegressionTree(opts ...TreeOption) *DecisionTree {
	return newTree(taskRegression, opts)
}

// NewClassificationTree returns a CART classifier with sensible defaults.
func NewClassificationTree(opts ...TreeOption) *DecisionTree {
	return newTree(taskClassification, opts)
}

// Fit trains the tree on X (n x p) and y (n targets; class labels for
// classification trees).
func (t *DecisionTree) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("tree: empty X")
	}
	if len(y) != n {
		return errors.New("tree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("tree: inconsistent number of features in X rows")
		}
	}
	t.nFeatures = p
	t.nSamples = n
	t.importances = make([]float64, p)

	if t.task == taskClassification {
		t.classes = uniqueSorted(y)
		t.classIndex = make(map[float64]int, len(t.classes))
		for i, c := range t.classes {
			t.classIndex[c] = i
		}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.root = t.build(X, y, idx, 0, rnd)
	return nil
}

func (t *DecisionTree) build(X [][]float64, y []float64, idx []int, depth int, rnd *rand.Rand) *dtNode {
	imp, leafVal := t.nodeStats(y, idx)

	if len(idx) < t.MinSamplesSplit ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) ||
		imp <= minGain {
		return &dtNode{leaf: true, value: leafVal}
	}

	feature, threshold, gain := t.bestSplit(X, y, idx, imp, rnd)
	if feature < 0 {
		return &dtNode{leaf: true, value: leafVal}
	}
	t.importances[feature] += float64(len(idx)) / float64(t.nSamples) * gain

	var left, right []int
	for _, i := range idx {
		v := X[i][feature]
		if !math.IsNaN(v) && v <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &dtNode{
		feature:   feature,
		threshold: threshold,
		left:      t.build(X, y, left, depth+1, rnd),
		right:     t.build(X, y, right, depth+1, rnd),
	}
}

// nodeStats returns the node impurity and the leaf value for idx.
func (t *DecisionTree) nodeStats(y []float64, idx []int) (float64, float64) {
	n := float64(len(idx))
	if t.task == taskRegression {
		sum, sumSq := 0.0, 0.0
		for _, i := range idx {
			sum += y[i]
			sumSq += y[i] * y[i]
		}
		mean := sum / n
		return sumSq/n - mean*mean, mean
	}

	counts := make([]float64, len(t.classes))
	for _, i := range idx {
		counts[t.classIndex[y[i]]]++
	}
	best := 0
	gini := 1.0
	for k, c := range counts {
		frac := c / n
		gini -= frac * frac
		if c > counts[best] {
			best = k
		}
	}
	return gini, t.classes[best]
}

type splitPair struct {
	v, y float64
}

// bestSplit scans candidate thresholds for each (possibly subsampled)
// feature and returns the split with the largest impurity decrease.
func (t *DecisionTree) bestSplit(X [][]float64, y []float64, idx []int, nodeImp float64, rnd *rand.Rand) (int, float64, float64) {
	features := make([]int, t.nFeatures)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < t.nFeatures {
		perm := rnd.Perm(t.nFeatures)
		features = perm[:t.MaxFeatures]
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := minGain
	n := len(idx)

	pairs := make([]splitPair, n)
	for _, f := range features {
		for k, i := range idx {
			pairs[k] = splitPair{v: X[i][f], y: y[i]}
		}
		// NaN sorts last so missing values always fall to the right
		// branch.
		sort.Slice(pairs, func(a, b int) bool {
			if math.IsNaN(pairs[a].v) {
				return false
			}
			if math.IsNaN(pairs[b].v) {
				return true
			}
			return pairs[a].v < pairs[b].v
		})

		if t.task == taskRegression {
			t.scanRegression(pairs, nodeImp, f, &bestFeature, &bestThreshold, &bestGain)
		} else {
			t.scanClassification(pairs, nodeImp, f, &bestFeature, &bestThreshold, &bestGain)
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func (t *DecisionTree) scanRegression(pairs []splitPair, nodeImp float64, f int, bestFeature *int, bestThreshold, bestGain *float64) {
	n := len(pairs)
	totalSum, totalSumSq := 0.0, 0.0
	for _, p := range pairs {
		totalSum += p.y
		totalSumSq += p.y * p.y
	}
	leftSum, leftSumSq := 0.0, 0.0
	for i := 1; i < n; i++ {
		leftSum += pairs[i-1].y
		leftSumSq += pairs[i-1].y * pairs[i-1].y
		if math.IsNaN(pairs[i].v) {
			break
		}
		if pairs[i].v == pairs[i-1].v {
			continue
		}
		nl, nr := float64(i), float64(n-i)
		if i < t.MinSamplesLeaf || n-i < t.MinSamplesLeaf {
			continue
		}
		meanL := leftSum / nl
		meanR := (totalSum - leftSum) / nr
		varL := leftSumSq/nl - meanL*meanL
		varR := (totalSumSq-leftSumSq)/nr - meanR*meanR
		gain := nodeImp - (nl*varL+nr*varR)/float64(n)
		if gain > *bestGain {
			*bestGain = gain
			*bestFeature = f
			*bestThreshold = (pairs[i-1].v + pairs[i].v) / 2
		}
	}
}

func (t *DecisionTree) scanClassification(pairs []splitPair, nodeImp float64, f int, bestFeature *int, bestThreshold, bestGain *float64) {
	n := len(pairs)
	total := make([]float64, len(t.classes))
	for _, p := range pairs {
		total[t.classIndex[p.y]]++
	}
	left := make([]float64, len(t.classes))
	for i := 1; i < n; i++ {
		left[t.classIndex[pairs[i-1].y]]++
		if math.IsNaN(pairs[i].v) {
			break
		}
		if pairs[i].v == pairs[i-1].v {
			continue
		}
		if i < t.MinSamplesLeaf || n-i < t.MinSamplesLeaf {
			continue
		}
		nl, nr := float64(i), float64(n-i)
		giniL, giniR := 1.0, 1.0
		for k := range t.classes {
			fl := left[k] / nl
			fr := (total[k] - left[k]) / nr
			giniL -= fl * fl
			giniR -= fr * fr
		}
		gain := nodeImp - (nl*giniL+nr*giniR)/float64(n)
		if gain > *bestGain {
			*bestGain = gain
			*bestFeature = f
			*bestThreshold = (pairs[i-1].v + pairs[i].v) / 2
		}
	}
}

// Predict returns per-row predictions: means for regression trees,
// class labels for classification trees.
func (t *DecisionTree) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = t.predictRow(row)
	}
	return out
}

func (t *DecisionTree) predictRow(row []float64) float64 {
	node := t.root
	for !node.leaf {
		v := row[node.feature]
		if !math.IsNaN(v) && v <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// Classes returns the class labels of a classification tree (nil for
// regression trees).
func (t *DecisionTree) Classes() []float64 { return t.classes }

// FeatureImportances returns normalized impurity-decrease importances.
func (t *DecisionTree) FeatureImportances() []float64 {
	return normalizeImportances(t.importances)
}

func normalizeImportances(raw []float64) []float64 {
	out := make([]float64, len(raw))
	sum := 0.0
	for _, v := range raw {
		sum += v
	}
	if sum == 0 {
		return out
	}
	for i, v := range raw {
		out[i] = v / sum
	}
	return out
}
