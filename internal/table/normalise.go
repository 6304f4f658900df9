package table

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/go-gota/gota/series"
)

// Policy decides which columns Normalise leaves unscaled.
type Policy int

const (
	// ZeroBound leaves a column unscaled when its minimum or its maximum
	// is exactly zero. A column such as [0, 10, 20] is therefore not
	// rescaled even though its range is non-zero.
	ZeroBound Policy = iota

	// ZeroRange leaves a column unscaled only when min == max.
	ZeroRange
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "zero_bound", "":
		return ZeroBound, nil
	case "range":
		return ZeroRange, nil
	}
	return 0, fmt.Errorf("unknown normalise policy %q", s)
}

func (p Policy) String() string {
	if p == ZeroRange {
		return "range"
	}
	return "zero_bound"
}

func (p Policy) exempt(min, max float64) bool {
	if p == ZeroRange {
		return min == max
	}
	return min == 0 || max == 0
}

// Normalise rescales every column of t except exclude to [0, 1] by min-max
// scaling, subject to policy. Missing values are ignored for the bounds and
// stay missing. Under ZeroBound a constant non-zero column divides by a zero
// range and becomes NaN.
func Normalise(t *Table, exclude string, policy Policy) (*Table, error) {
	var scaled []series.Series
	for _, name := range t.Names() {
		if name == exclude {
			continue
		}
		s, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if !numeric(s) {
			return nil, fmt.Errorf("normalise: %w: %q is %s", ErrNotNumeric, name, s.Type())
		}

		xs := s.Float()
		min, max, ok := bounds(xs)
		if !ok || policy.exempt(min, max) {
			continue
		}

		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = (x - min) / (max - min)
		}
		scaled = append(scaled, series.New(out, series.Float, name))
	}
	return t.replace(scaled), nil
}

// bounds returns the extremes of the non-NaN values of xs.
func bounds(xs []float64) (min, max float64, ok bool) {
	present := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			present = append(present, x)
		}
	}
	if len(present) == 0 {
		return 0, 0, false
	}
	min, max = stats.Bounds(present)
	return min, max, true
}
