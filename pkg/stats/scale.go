package stats

import "math"

// StandardScaler standardizes each column to zero mean and unit
// variance. Fit on train data, then Transform any matrix with the
// same column layout. Constant columns keep std 1 so transformed
// values stay finite.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// RestoredScaler rebuilds a fitted scaler from saved parameters.
func RestoredScaler(mean, std []float64) *StandardScaler {
	return &StandardScaler{Mean: mean, Std: std, fit: len(mean) > 0}
}

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return nil
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			s.Mean[j] += X[i][j]
		}
		s.Mean[j] /= float64(r)
		v := 0.0
		for i := 0; i < r; i++ {
			d := X[i][j] - s.Mean[j]
			v += d * d
		}
		v /= float64(r)
		s.Std[j] = math.Sqrt(v)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	r := len(X)
	Y := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, len(X[i]))
		for j := range row {
			row[j] = (X[i][j] - s.Mean[j]) / s.Std[j]
		}
		Y[i] = row
	}
	return Y
}

func (s *StandardScaler) FitTransform(X [][]float64) [][]float64 {
	_ = s.Fit(X)
	return s.Transform(X)
}
