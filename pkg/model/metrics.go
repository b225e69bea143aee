package model

import "math"

func MSE(yTrue, yPred []float64) float64 {
	n := float64(len(yTrue))
	if n == 0 {
		return 0
	}
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return s / n
}

func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	m := 0.0
	for _, v := range yTrue {
		m += v
	}
	m /= float64(len(yTrue))
	ssTot := 0.0
	ssRes := 0.0
	for i := range yTrue {
		d := yTrue[i] - m
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func Accuracy(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// WeightedPrecisionRecallF1 computes multi-class precision, recall
// and F1, each averaged over classes weighted by support. Classes
// with no predicted (or no true) samples contribute zero instead of
// dividing by zero.
func WeightedPrecisionRecallF1(yTrue, yPred []float64) (prec, rec, f1 float64) {
	if len(yTrue) == 0 {
		return 0, 0, 0
	}
	type counts struct {
		tp, fp, fn int
		support    int
	}
	byClass := make(map[float64]*counts)
	class := func(v float64) *counts {
		c, ok := byClass[v]
		if !ok {
			c = &counts{}
			byClass[v] = c
		}
		return c
	}
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		class(t).support++
		if t == p {
			class(t).tp++
		} else {
			class(p).fp++
			class(t).fn++
		}
	}
	total := float64(len(yTrue))
	for _, c := range byClass {
		w := float64(c.support) / total
		var cp, cr, cf float64
		if c.tp+c.fp > 0 {
			cp = float64(c.tp) / float64(c.tp+c.fp)
		}
		if c.tp+c.fn > 0 {
			cr = float64(c.tp) / float64(c.tp+c.fn)
		}
		if cp+cr > 0 {
			cf = 2 * cp * cr / (cp + cr)
		}
		prec += w * cp
		rec += w * cr
		f1 += w * cf
	}
	return prec, rec, f1
}
