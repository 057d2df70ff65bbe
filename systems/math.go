package systems

import "math"

// Clamp32 clamps x to [lo, hi].
func Clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp32 linearly interpolates between a and b.
func Lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// NormalizeAngle wraps an angle to [-pi, pi].
func NormalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Hypot32 returns the length of a 2D vector.
func Hypot32(x, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + z*z)))
}
