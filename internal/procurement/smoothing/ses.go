// Package smoothing fits level-only (simple) exponential smoothing models.
package smoothing

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

var ErrEmptySeries = errors.New("smoothing: empty series")

// Model is a fitted simple exponential smoothing model.
type Model struct {
	Alpha        float64
	InitialLevel float64
	Level        float64
	SSE          float64
}

// Fit estimates the smoothing level alpha and the initial level jointly by
// minimising the one-step-ahead squared error. Alpha is kept inside (0, 1)
// through a logistic transform, so the search itself is unconstrained.
func Fit(series []float64) (Model, error) {
	if len(series) == 0 {
		return Model{}, ErrEmptySeries
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sse, _ := filter(series, logistic(x[0]), x[1])
			return sse
		},
	}
	init := []float64{0, series[0]}
	settings := &optimize.Settings{
		FuncEvaluations: 5000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 200,
		},
	}

	params := init
	result, err := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if err == nil && result != nil && finite(result.X) {
		params = result.X
	}

	alpha := logistic(params[0])
	sse, level := filter(series, alpha, params[1])
	return Model{Alpha: alpha, InitialLevel: params[1], Level: level, SSE: sse}, nil
}

// Forecast projects h periods ahead. A level-only model has a flat forecast.
func (m Model) Forecast(h int) []float64 {
	out := make([]float64, h)
	for i := range out {
		out[i] = m.Level
	}
	return out
}

// filter runs the smoothing recursion and returns the squared error of the
// one-step-ahead predictions and the final level.
func filter(series []float64, alpha, level float64) (sse, last float64) {
	for _, y := range series {
		e := y - level
		sse += e * e
		level += alpha * e
	}
	return sse, level
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
