package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers features to zero mean and unit variance, fitted on
// the training split only.
type StandardScaler struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

func (s *StandardScaler) Fit(samples [][]float64) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to fit scaler")
	}
	dims := len(samples[0])
	s.Means = make([]float64, dims)
	s.Stds = make([]float64, dims)

	column := make([]float64, len(samples))
	for d := 0; d < dims; d++ {
		for i, sample := range samples {
			if len(sample) != dims {
				return fmt.Errorf("sample %d has %d features, want %d", i, len(sample), dims)
			}
			column[i] = sample[d]
		}
		mean, std := stat.MeanStdDev(column, nil)
		s.Means[d] = mean
		if std == 0 || len(samples) < 2 {
			std = 1
		}
		s.Stds[d] = std
	}
	return nil
}

func (s *StandardScaler) Transform(features []float64) []float64 {
	out := make([]float64, len(features))
	for i, v := range features {
		out[i] = (v - s.Means[i]) / s.Stds[i]
	}
	return out
}

func (s *StandardScaler) TransformAll(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i, sample := range samples {
		out[i] = s.Transform(sample)
	}
	return out
}
