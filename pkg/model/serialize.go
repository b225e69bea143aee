package model

import (
	"bytes"
	"encoding/gob"

	"github.com/tsakane28/notebook/pkg/stats"
)

// Wire mirrors for gob: the estimators keep their training state in
// unexported fields, so each implements BinaryMarshaler over an
// exported shadow struct.

type dtNodeWire struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Value     float64
	Left      *dtNodeWire
	Right     *dtNodeWire
}

func toWire(n *dtNode) *dtNodeWire {
	if n == nil {
		return nil
	}
	return &dtNodeWire{
		Leaf:      n.leaf,
		Feature:   n.feature,
		Threshold: n.threshold,
		Value:     n.value,
		Left:      toWire(n.left),
		Right:     toWire(n.right),
	}
}

func fromWire(w *dtNodeWire) *dtNode {
	if w == nil {
		return nil
	}
	return &dtNode{
		leaf:      w.Leaf,
		feature:   w.Feature,
		threshold: w.Threshold,
		value:     w.Value,
		left:      fromWire(w.Left),
		right:     fromWire(w.Right),
	}
}

type treeWire struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Seed            int64
	Task            int
	Classes         []float64
	NFeatures       int
	NSamples        int
	Importances     []float64
	Root            *dtNodeWire
}

// MarshalBinary implements encoding.BinaryMarshaler using gob.
func (t *DecisionTree) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(treeWire{
		MaxDepth:        t.MaxDepth,
		MinSamplesSplit: t.MinSamplesSplit,
		MinSamplesLeaf:  t.MinSamplesLeaf,
		MaxFeatures:     t.MaxFeatures,
		Seed:            t.Seed,
		Task:            int(t.task),
		Classes:         t.classes,
		NFeatures:       t.nFeatures,
		NSamples:        t.nSamples,
		Importances:     t.importances,
		Root:            toWire(t.root),
	})
	return buf.Bytes(), err
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using gob.
func (t *DecisionTree) UnmarshalBinary(data []byte) error {
	var w treeWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	t.MaxDepth = w.MaxDepth
	t.MinSamplesSplit = w.MinSamplesSplit
	t.MinSamplesLeaf = w.MinSamplesLeaf
	t.MaxFeatures = w.MaxFeatures
	t.Seed = w.Seed
	t.task = treeTask(w.Task)
	t.classes = w.Classes
	t.nFeatures = w.NFeatures
	t.nSamples = w.NSamples
	t.importances = w.Importances
	t.root = fromWire(w.Root)
	if t.task == taskClassification {
		t.classIndex = make(map[float64]int, len(t.classes))
		for i, c := range t.classes {
			t.classIndex[c] = i
		}
	}
	return nil
}

type forestWire struct {
	NEstimators int
	MaxDepth    int
	MaxFeatures int
	Seed        int64
	Trees       []*DecisionTree
	Classes     []float64
	NFeatures   int
}

func (f *RandomForestRegressor) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(forestWire{
		NEstimators: f.NEstimators, MaxDepth: f.MaxDepth, MaxFeatures: f.MaxFeatures,
		Seed: f.Seed, Trees: f.trees, NFeatures: f.nFeatures,
	})
	return buf.Bytes(), err
}

func (f *RandomForestRegressor) UnmarshalBinary(data []byte) error {
	var w forestWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	f.NEstimators, f.MaxDepth, f.MaxFeatures, f.Seed = w.NEstimators, w.MaxDepth, w.MaxFeatures, w.Seed
	f.trees, f.nFeatures = w.Trees, w.NFeatures
	return nil
}

func (f *RandomForestClassifier) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(forestWire{
		NEstimators: f.NEstimators, MaxDepth: f.MaxDepth, MaxFeatures: f.MaxFeatures,
		Seed: f.Seed, Trees: f.trees, Classes: f.classes, NFeatures: f.nFeatures,
	})
	return buf.Bytes(), err
}

func (f *RandomForestClassifier) UnmarshalBinary(data []byte) error {
	var w forestWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	f.NEstimators, f.MaxDepth, f.MaxFeatures, f.Seed = w.NEstimators, w.MaxDepth, w.MaxFeatures, w.Seed
	f.trees, f.classes, f.nFeatures = w.Trees, w.Classes, w.NFeatures
	return nil
}

type boosterWire struct {
	Init  float64
	Trees []*DecisionTree
}

type gbWire struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	Seed         int64
	Init         float64
	Trees        []*DecisionTree
	Classes      []float64
	Boosters     []boosterWire
	NFeatures    int
}

func (g *GradientBoostingRegressor) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(gbWire{
		NEstimators: g.NEstimators, LearningRate: g.LearningRate, MaxDepth: g.MaxDepth,
		Seed: g.Seed, Init: g.init, Trees: g.trees, NFeatures: g.nFeatures,
	})
	return buf.Bytes(), err
}

func (g *GradientBoostingRegressor) UnmarshalBinary(data []byte) error {
	var w gbWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	g.NEstimators, g.LearningRate, g.MaxDepth, g.Seed = w.NEstimators, w.LearningRate, w.MaxDepth, w.Seed
	g.init, g.trees, g.nFeatures = w.Init, w.Trees, w.NFeatures
	return nil
}

func (g *GradientBoostingClassifier) MarshalBinary() ([]byte, error) {
	boosters := make([]boosterWire, len(g.boosters))
	for i, b := range g.boosters {
		boosters[i] = boosterWire{Init: b.init, Trees: b.trees}
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(gbWire{
		NEstimators: g.NEstimators, LearningRate: g.LearningRate, MaxDepth: g.MaxDepth,
		Seed: g.Seed, Classes: g.classes, Boosters: boosters, NFeatures: g.nFeatures,
	})
	return buf.Bytes(), err
}

func (g *GradientBoostingClassifier) UnmarshalBinary(data []byte) error {
	var w gbWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	g.NEstimators, g.LearningRate, g.MaxDepth, g.Seed = w.NEstimators, w.LearningRate, w.MaxDepth, w.Seed
	g.classes, g.nFeatures = w.Classes, w.NFeatures
	g.boosters = make([]*gbBinary, len(w.Boosters))
	for i, b := range w.Boosters {
		g.boosters[i] = &gbBinary{init: b.Init, trees: b.Trees}
	}
	return nil
}

type logisticWire struct {
	Lr      float64
	Epochs  int
	Mean    []float64
	Std     []float64
	Classes []float64
	W       [][]float64
	B       []float64
}

func (m *LogisticRegression) MarshalBinary() ([]byte, error) {
	w := logisticWire{Lr: m.Lr, Epochs: m.Epochs, Classes: m.classes, W: m.w, B: m.b}
	if m.scaler != nil {
		w.Mean, w.Std = m.scaler.Mean, m.scaler.Std
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(w)
	return buf.Bytes(), err
}

func (m *LogisticRegression) UnmarshalBinary(data []byte) error {
	var w logisticWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	m.Lr, m.Epochs = w.Lr, w.Epochs
	m.classes, m.w, m.b = w.Classes, w.W, w.B
	m.scaler = stats.RestoredScaler(w.Mean, w.Std)
	return nil
}
