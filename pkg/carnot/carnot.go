package carnot

// AbsoluteZeroC is 0 K expressed in degrees Celsius.
const AbsoluteZeroC = -273.15

// Efficiency returns the Carnot efficiency for an ideal reversible heat
// engine operating between a hot and a cold reservoir, both in Kelvin:
//
//	η = 1 - (Tc / Th)
//
// The result is in [0, 1). Tc == 0 is a valid boundary (an absolute-zero
// sink) and yields exactly 1.
//
// Errors:
//   - ErrInvalidTemperature when tHot <= 0 or tCold < 0
//   - ErrInvalidOrdering when tCold >= tHot
//
// The temperature-range check runs before the ordering check, so a caller
// passing tHot=0, tCold=10 sees ErrInvalidTemperature.
func Efficiency(tHot, tCold float64) (float64, error) {
	if tHot <= 0 || tCold < 0 {
		return 0, ErrInvalidTemperature
	}
	if tCold >= tHot {
		return 0, ErrInvalidOrdering
	}
	return 1 - tCold/tHot, nil
}

// CelsiusToKelvin converts a Celsius temperature to Kelvin. Total function:
// physically impossible inputs pass through, validation happens in
// Efficiency.
func CelsiusToKelvin(c float64) float64 { return c - AbsoluteZeroC }

// KelvinToCelsius converts a Kelvin temperature to Celsius. Exact inverse of
// CelsiusToKelvin up to floating-point rounding.
func KelvinToCelsius(k float64) float64 { return k + AbsoluteZeroC }

// WorkOutput returns the useful work extracted from totalEnergy at the given
// efficiency: E * η. Neither argument is validated here; callers obtain a
// valid η from Efficiency first.
func WorkOutput(totalEnergy, efficiency float64) float64 {
	return totalEnergy * efficiency
}

// WasteHeat returns the heat rejected to the cold reservoir: E * (1 - η).
// WorkOutput(E, η) + WasteHeat(E, η) == E for all inputs.
func WasteHeat(totalEnergy, efficiency float64) float64 {
	return totalEnergy * (1 - efficiency)
}
