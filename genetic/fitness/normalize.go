// Package fitness holds helpers that map raw objective values to scores in (0,1].
package fitness

// NormalizeFunc converts a raw metric to a 0-1 score
type NormalizeFunc func(raw float64) float64

// NormalizeInverse creates an inverse normalizer: 1 / (1 + raw/scale)
// Negative raw values are treated as 0 so the result stays in (0,1]
func NormalizeInverse(scale float64) NormalizeFunc {
	if scale <= 0 {
		scale = 1
	}
	return func(raw float64) float64 {
		if raw < 0 {
			raw = 0
		}
		return 1.0 / (1.0 + raw/scale)
	}
}

// Perfect is the score a solution reaching its objective receives
const Perfect = 1.0

// IsPerfect reports whether score has reached Perfect
func IsPerfect(score float64) bool {
	return score >= Perfect
}
