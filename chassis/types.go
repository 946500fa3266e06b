// Package chassis describes the three-wheel Ackermann chassis: two driven front wheels on a
// common axle and one steered rear wheel. It converts between the three equivalent
// descriptions of the chassis' instantaneous motion:
//
//   - Physical: the control surface, fastest-wheel speed plus rear wheel angle.
//   - Twist: body frame linear and angular speed of the rotation center. This is the hub every
//     other conversion passes through.
//   - Wheels: angular velocities of the two drive wheels, as observed by the encoders.
package chassis

import (
	"fmt"

	"go.viam.com/trike/utils"
)

// Physical is an Ackermann style command.
type Physical struct {
	// Speed is the ground speed in m/s of whichever wheel is currently the fastest.
	Speed float32 `json:"speed"`
	// Rudder is the rear wheel angle in radians, positive turning left. NaN means released.
	Rudder float32 `json:"rudder"`
}

var (
	// Released lets the rear wheel float and requests no motion.
	Released = Physical{Speed: 0, Rudder: utils.NaN32()}
	// Zero is stopped and straight. Use it where Released cannot be represented.
	Zero = Physical{}
)

// IsReleased reports whether the rear wheel is released.
func (p Physical) IsReleased() bool {
	return utils.IsNaN32(p.Rudder)
}

// IsStatic reports whether the command requests no longitudinal motion.
func (p Physical) IsStatic() bool {
	return p.Speed == 0
}

func (p Physical) String() string {
	if p.IsReleased() {
		return fmt.Sprintf("Physical{speed: %v, released}", p.Speed)
	}
	return fmt.Sprintf("Physical{speed: %v, rudder: %v}", p.Speed, p.Rudder)
}

// Wheels holds the angular velocities of the two drive wheels in rad/s. Positive is forward.
type Wheels struct {
	Left  float32 `json:"left"`
	Right float32 `json:"right"`
}

// Scale returns both wheel velocities multiplied by k.
func (w Wheels) Scale(k float32) Wheels {
	return Wheels{Left: w.Left * k, Right: w.Right * k}
}

// Twist is the body frame motion of the rotation center: V in m/s and W in rad/s,
// counterclockwise positive.
type Twist struct {
	V float32 `json:"v"`
	W float32 `json:"w"`
}

// Scale returns the twist multiplied by k. Scaling by a tick period turns a velocity
// into the distance and angle travelled over that tick.
func (t Twist) Scale(k float32) Twist {
	return Twist{V: t.V * k, W: t.W * k}
}
