package stats

import "errors"

var (
	// ErrLength indicates paired samples of different lengths.
	ErrLength = errors.New("stats: samples differ in length")

	// ErrDegenerate indicates too few points or a zero-variance sample.
	ErrDegenerate = errors.New("stats: degenerate sample")
)
