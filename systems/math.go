package systems

import "math"

// Clamp functions for common value ranges

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// floor0 clamps negative values to zero.
func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Wrap maps v into [0, size). Values that round up to size after the modulo
// are folded back to 0 so the upper bound stays exclusive.
func Wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}

// wrapHue maps a hue in degrees into [0, 360).
func wrapHue(h float64) float64 {
	return Wrap(h, 360)
}

// ToroidalDelta returns the shortest path delta from (x1,y1) to (x2,y2).
func ToroidalDelta(x1, y1, x2, y2, w, h float64) (dx, dy float64) {
	dx = x2 - x1
	dy = y2 - y1

	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}

	return dx, dy
}

// ToroidalDistance returns the shortest distance between two points on the torus.
func ToroidalDistance(x1, y1, x2, y2, w, h float64) float64 {
	dx, dy := ToroidalDelta(x1, y1, x2, y2, w, h)
	return math.Hypot(dx, dy)
}

// blendToward mixes the current velocity with a desired velocity of the given
// speed pointing along (dx, dy). keep is the weight of the current velocity.
func blendToward(vx, vy, dx, dy, speed, keep float64) (float64, float64) {
	d := math.Hypot(dx, dy)
	if d == 0 {
		return vx, vy
	}
	desX := dx / d * speed
	desY := dy / d * speed
	return keep*vx + (1-keep)*desX, keep*vy + (1-keep)*desY
}
