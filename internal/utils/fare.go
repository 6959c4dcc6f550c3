package utils

import "math"

// fareDivisors are minor-unit (cent) "roundness" steps, coarsest first.
var fareDivisors = []int64{500, 200, 100, 50, 20, 10}

// QuantizeFare rounds amount to a display-friendly value. The amount is
// converted to cents after rounding to 2 decimals, then snapped against the
// divisor list. Note the loop always returns on its first iteration, so the
// observable behavior is "nearest multiple of 5.00 unless already exact";
// the finer divisors are kept to match the fare data already in production.
func QuantizeFare(amount float64) float64 {
	cents := int64(math.Round(amount * 100))

	for _, divisor := range fareDivisors {
		remainder := cents % divisor
		if remainder == 0 {
			return float64(cents) / 100
		}
		if remainder <= divisor/2 {
			return float64(cents-remainder) / 100
		}
		return float64(cents+(divisor-remainder)) / 100
	}

	// Unreachable with a non-empty divisor list.
	return math.Round(float64(cents)/10) * 0.10
}
