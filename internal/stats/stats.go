// Package stats computes the statistics genplot overlays on its charts.
//
//   - [Pearson]: correlation coefficient of two paired samples
//   - [CorrelationMatrix]: pairwise Pearson coefficients of many columns
//   - [LinearFit]: ordinary least squares line, with [Fit.Residuals]
//   - [Lowess]: locally weighted smoother used by the residual plot
//   - [Summarise]: count, mean, spread and bounds of a column
//
// Correlation and regression come from gonum's stat package; bounds,
// summaries and LOESS from go-moremath.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/fit"
	mstats "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Pearson returns the Pearson correlation coefficient of x and y.
func Pearson(x, y []float64) (float64, error) {
	if err := paired(x, y); err != nil {
		return 0, err
	}
	if variance(x) == 0 || variance(y) == 0 {
		return 0, fmt.Errorf("%w: zero variance", ErrDegenerate)
	}
	return stat.Correlation(x, y, nil), nil
}

// CorrelationMatrix returns the Pearson coefficients between every pair of
// columns. A zero-variance column yields NaN entries.
func CorrelationMatrix(cols [][]float64) ([][]float64, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrDegenerate)
	}
	n := len(cols[0])
	for _, c := range cols[1:] {
		if len(c) != n {
			return nil, ErrLength
		}
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d rows", ErrDegenerate, n)
	}

	data := mat.NewDense(n, len(cols), nil)
	for j, c := range cols {
		data.SetCol(j, c)
	}
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, data, nil)

	out := make([][]float64, len(cols))
	for i := range out {
		out[i] = make([]float64, len(cols))
		for j := range out[i] {
			out[i][j] = corr.At(i, j)
		}
	}
	return out, nil
}

// Fit is a least squares line y = Intercept + Slope*x.
type Fit struct {
	Intercept float64
	Slope     float64
}

func (f Fit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// Residuals returns y[i] - f.At(x[i]).
func (f Fit) Residuals(x, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = y[i] - f.At(x[i])
	}
	return out
}

// LinearFit regresses y on x by ordinary least squares.
func LinearFit(x, y []float64) (Fit, error) {
	if err := paired(x, y); err != nil {
		return Fit{}, err
	}
	if variance(x) == 0 {
		return Fit{}, fmt.Errorf("%w: zero variance in x", ErrDegenerate)
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Fit{Intercept: alpha, Slope: beta}, nil
}

// Lowess smooths y against x with a locally linear LOESS fit over the
// given fraction of points and returns the smoothed value at each x.
func Lowess(x, y []float64, span float64) ([]float64, error) {
	if err := paired(x, y); err != nil {
		return nil, err
	}
	if span <= 0 || span > 1 {
		return nil, fmt.Errorf("lowess: span %g outside (0, 1]", span)
	}
	// Every local fit needs at least three points.
	if span*float64(len(x)) < 3 {
		span = math.Min(1, 3/float64(len(x)))
	}

	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i, k := range order {
		xs[i], ys[i] = x[k], y[k]
	}

	f := fit.LOESS(xs, ys, 1, span)
	out := make([]float64, len(x))
	for i := range x {
		out[i] = f(x[i])
	}
	return out, nil
}

// Summary describes one numeric column; missing values are not counted.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

func Summarise(xs []float64) Summary {
	present := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			present = append(present, x)
		}
	}
	s := Summary{Count: len(present)}
	if s.Count == 0 {
		s.Mean, s.Std, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Mean = mstats.Mean(present)
	s.Min, s.Max = mstats.Bounds(present)
	if s.Count > 1 {
		s.Std = mstats.StdDev(present)
	} else {
		s.Std = math.NaN()
	}
	return s
}

func paired(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d and %d", ErrLength, len(x), len(y))
	}
	if len(x) < 2 {
		return fmt.Errorf("%w: %d points", ErrDegenerate, len(x))
	}
	return nil
}

func variance(xs []float64) float64 {
	return stat.Variance(xs, nil)
}
