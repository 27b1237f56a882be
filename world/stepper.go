package world

import "math"

// FixedStepper converts variable frame times into a whole number of
// fixed-size simulation steps, so results do not depend on frame rate.
type FixedStepper struct {
	dt       float64
	maxSteps int
	acc      float64
}

// NewFixedStepper creates a stepper for step size dt that runs at most
// maxSteps per Advance (0 means unlimited).
func NewFixedStepper(dt float64, maxSteps int) *FixedStepper {
	return &FixedStepper{dt: dt, maxSteps: maxSteps}
}

// Advance adds elapsed wall-clock seconds and calls step once per whole dt
// accumulated. When the clamp is hit the backlog is dropped, keeping only
// the sub-step remainder. It returns the number of steps run.
func (s *FixedStepper) Advance(elapsed float64, step func(dt float64)) int {
	if elapsed > 0 {
		s.acc += elapsed
	}
	n := 0
	for s.acc >= s.dt {
		if s.maxSteps > 0 && n >= s.maxSteps {
			s.acc = math.Mod(s.acc, s.dt)
			break
		}
		step(s.dt)
		s.acc -= s.dt
		n++
	}
	return n
}

// Alpha returns how far the accumulator is into the next step, in [0, 1).
func (s *FixedStepper) Alpha() float64 {
	return s.acc / s.dt
}

// Reset discards accumulated time.
func (s *FixedStepper) Reset() {
	s.acc = 0
}
