package snappot

import (
	"errors"
)

var (
	// ErrNonAxisymmetric is returned when a query passes a nonzero azimuth
	// or time to an interpolated potential. The fields built here are
	// axisymmetric and static.
	ErrNonAxisymmetric = errors.New(
		"snappot: only axisymmetric, static queries are supported (phi = t = 0)",
	)

	// ErrNotNormalized is returned by Denormalize when no normalization is
	// outstanding.
	ErrNotNormalized = errors.New(
		"snappot: Denormalize() called without a prior Normalize()",
	)
)
