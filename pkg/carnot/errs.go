package carnot

import "errors"

var (
	// ErrInvalidTemperature indicates a reservoir temperature outside the
	// physical Kelvin domain: hot must be > 0 K, cold must be >= 0 K.
	ErrInvalidTemperature = errors.New("carnot: temperatures must be positive (in Kelvin)")

	// ErrInvalidOrdering indicates the cold reservoir is at or above the hot
	// reservoir; a Carnot engine needs a strict temperature gradient.
	ErrInvalidOrdering = errors.New("carnot: cold reservoir temperature must be less than hot reservoir temperature")
)
