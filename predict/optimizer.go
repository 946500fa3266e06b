// Package predict smooths chassis commands so they respect actuator limits and forecasts the
// commands and motion that following a target produces over successive control ticks.
package predict

import (
	"math"
	"time"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/utils"
)

// Optimizer limits the longitudinal speed of a command.
type Optimizer struct {
	angularAttenuation float32
	speedStep          float32
}

// NewOptimizer returns an optimizer for the given attenuation at full steering lock in [0, 1],
// acceleration in m/s² and control period.
func NewOptimizer(angularAttenuation, acceleration float32, period time.Duration) Optimizer {
	return Optimizer{
		angularAttenuation: angularAttenuation,
		speedStep:          acceleration * float32(period.Seconds()),
	}
}

// AngularAttenuation returns the fraction of speed kept at full steering lock.
func (o Optimizer) AngularAttenuation() float32 {
	return o.angularAttenuation
}

// SpeedStep returns the largest speed change allowed per tick in m/s.
func (o Optimizer) SpeedStep() float32 {
	return o.speedStep
}

// OptimizeSpeed returns the speed to issue this tick when heading from current to target.
func (o Optimizer) OptimizeSpeed(target, current chassis.Physical) float32 {
	speed := target.Speed
	if !target.IsReleased() {
		// the faster the chassis already moves forward the more rudder mismatch is tolerated.
		// Reversing narrows the window, down to nothing at -0.5 m/s.
		width := current.Speed*(math.Pi/3) + math.Pi/6
		diff := utils.Abs32(target.Rudder - current.Rudder)
		// the rear wheel turns at a finite rate: hold back until it has caught up
		speed *= utils.Max32(0, 1-diff/width)
		// take sharp turns slower
		speed *= (1-utils.Abs32(target.Rudder)/(math.Pi/2))*(1-o.angularAttenuation) + o.angularAttenuation
	}
	// accelerate gently
	return StepLimited(current.Speed, o.speedStep, speed)
}

// StepLimited moves current toward target by at most step. When the two cannot be ordered,
// because either is NaN, current is returned unchanged.
func StepLimited(current, step, target float32) float32 {
	switch {
	case target > current:
		return utils.Min32(current+step, target)
	case target < current:
		return utils.Max32(current-step, target)
	default:
		return current
	}
}
