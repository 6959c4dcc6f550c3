package tracking

import "math"

// GPS fixes are stored in display form: coordinates keep 6 decimals
// (about 0.11 m), speed snaps to 5 km/h steps, heading to 10 degree steps.

func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func QuantizeSpeed(v float64) float64 {
	return math.Round(v/5) * 5
}

func QuantizeHeading(v float64) float64 {
	return math.Round(v/10) * 10
}
