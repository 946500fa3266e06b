// Package encoder converts between motor encoder pulses and axle radians.
package encoder

import (
	"math"
	"time"

	"go.viam.com/trike/chassis"
)

// Scaler is the number of axle radians per encoder pulse.
type Scaler float32

const (
	// Wheel scales the drive motors: a 400 line quadrature encoder behind a 20:1 reducer.
	Wheel Scaler = 2 * math.Pi / (4 * 400 * 20)
	// Rudder scales the rear wheel servo: a 14 bit absolute encoder.
	Rudder Scaler = 2 * math.Pi / 16384
)

// PulsesToRad converts a pulse count into radians.
func (k Scaler) PulsesToRad(pulses int32) float32 {
	return float32(pulses) * float32(k)
}

// RadToPulses converts radians into the nearest pulse count, rounding half away from zero.
// Results outside the int32 range are undefined.
func (k Scaler) RadToPulses(rad float32) int32 {
	return int32(math.Round(float64(rad / float32(k))))
}

// WheelsFromPulses turns the drive encoder pulse deltas counted over dt into wheel angular
// velocities.
func WheelsFromPulses(left, right int32, dt time.Duration) chassis.Wheels {
	seconds := float32(dt.Seconds())
	if seconds == 0 {
		return chassis.Wheels{}
	}
	return chassis.Wheels{
		Left:  Wheel.PulsesToRad(left) / seconds,
		Right: Wheel.PulsesToRad(right) / seconds,
	}
}

// PulsesFromWheels turns wheel angular velocities into the drive encoder pulse counts expected
// over dt.
func PulsesFromWheels(w chassis.Wheels, dt time.Duration) (left, right int32) {
	seconds := float32(dt.Seconds())
	return Wheel.RadToPulses(w.Left * seconds), Wheel.RadToPulses(w.Right * seconds)
}

// RudderAngle converts an absolute rear wheel encoder reading into the rudder angle.
func RudderAngle(pulses int32) float32 {
	return Rudder.PulsesToRad(pulses)
}

// RudderPulses converts a rudder angle into the absolute rear wheel encoder reading.
func RudderPulses(rudder float32) int32 {
	return Rudder.RadToPulses(rudder)
}
