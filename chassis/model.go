package chassis

import (
	"go.viam.com/trike/utils"
)

const (
	// DefaultWidth is the track of the reference platform in metres.
	DefaultWidth = float32(0.465)
	// DefaultLength is the wheelbase of the reference platform in metres.
	DefaultLength = float32(0.355)
	// DefaultWheelRadius is the drive wheel radius of the reference platform in metres.
	DefaultWheelRadius = float32(0.105)
)

// Model describes the chassis geometry and converts between control spaces.
//
// Besides the three dimensions the model caches the critical rudder angle. When the rear wheel
// is turned further than that angle its ground speed exceeds the front wheels' and Physical.Speed
// refers to the rear wheel; otherwise it refers to the faster front wheel. This keeps the top
// speed of a sharp turn from running away from that of a straight line.
type Model struct {
	// Width is the distance between the front wheels in metres.
	Width float32
	// Length is the distance from the front axle to the rear wheel in metres.
	Length float32
	// Wheel is the drive wheel radius in metres.
	Wheel float32

	criticalRudder float32
}

// NewModel returns a chassis model for the given track, wheelbase and drive wheel radius.
func NewModel(width, length, wheel float32) Model {
	return Model{
		Width:          width,
		Length:         length,
		Wheel:          wheel,
		criticalRudder: utils.Atan2Float32(length*length/width-width/2, length),
	}
}

// DefaultModel returns the model of the reference platform.
func DefaultModel() Model {
	return NewModel(DefaultWidth, DefaultLength, DefaultWheelRadius)
}

// CriticalRudder returns the rear wheel angle beyond which the rear wheel limits speed.
func (m Model) CriticalRudder() float32 {
	return m.criticalRudder
}

// PhysicalToTwist converts a command into the motion it produces. A released command produces
// no motion.
func (m Model) PhysicalToTwist(p Physical) Twist {
	switch {
	case p.IsReleased():
		return Twist{}
	case p.Rudder == 0:
		return Twist{V: p.Speed}
	}

	// signed turn radius of the chassis, positive with the center on the left
	rChassis := -m.Length / utils.Tan32(p.Rudder)
	var w float32
	switch {
	case utils.Abs32(p.Rudder) > m.criticalRudder:
		// speed belongs to the rear wheel
		rRudder := -m.Length / utils.Sin32(p.Rudder)
		w = p.Speed / rRudder
	case p.Rudder > 0:
		// speed belongs to the left wheel
		w = p.Speed / (rChassis - m.Width/2)
	default:
		// speed belongs to the right wheel
		w = p.Speed / (rChassis + m.Width/2)
	}
	return Twist{V: w * rChassis, W: w}
}

// TwistToPhysical converts a motion into the command that produces it. No motion maps to
// Released.
func (m Model) TwistToPhysical(t Twist) Physical {
	if t.W == 0 {
		if t.V == 0 {
			return Released
		}
		return Physical{Speed: t.V, Rudder: 0}
	}

	rChassis := t.V / t.W
	// atan2 is fed a non-negative x so the angle stays within (-π/2, π/2) and its sign follows
	// the turn direction even as the radius changes sign.
	rudder := utils.Atan2Float32(utils.Signum32(rChassis)*-m.Length, utils.Abs32(rChassis))

	var radius float32
	switch {
	case utils.Abs32(rudder) > m.criticalRudder:
		radius = -m.Length / utils.Sin32(rudder)
	case rudder > 0:
		radius = rChassis - m.Width/2
	default:
		radius = rChassis + m.Width/2
	}
	return Physical{Speed: t.W * radius, Rudder: rudder}
}

// WheelsToTwist converts drive wheel angular velocities into a twist.
func (m Model) WheelsToTwist(w Wheels) Twist {
	return Twist{
		V: (w.Right + w.Left) * m.Wheel / 2,
		W: (w.Right - w.Left) * m.Wheel / m.Width,
	}
}

// TwistToWheels converts a twist into drive wheel angular velocities.
func (m Model) TwistToWheels(t Twist) Wheels {
	return Wheels{
		Left:  (t.V - m.Width/2*t.W) / m.Wheel,
		Right: (t.V + m.Width/2*t.W) / m.Wheel,
	}
}

// PhysicalToWheels converts a command into the drive wheel velocities that realize it.
func (m Model) PhysicalToWheels(p Physical) Wheels {
	return m.TwistToWheels(m.PhysicalToTwist(p))
}

// WheelsToPhysical converts observed drive wheel velocities into the equivalent command.
func (m Model) WheelsToPhysical(w Wheels) Physical {
	return m.TwistToPhysical(m.WheelsToTwist(w))
}
