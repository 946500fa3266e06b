// Package odometry integrates chassis motion into a running planar pose estimate.
package odometry

import (
	"fmt"
	"time"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/spatialmath"
	"go.viam.com/trike/utils"
)

// Odometry is a travelled distance, an accumulated absolute rotation and a pose.
// Increments compose with Add; Zero is the neutral element.
type Odometry struct {
	// S is the distance travelled in metres. Never negative.
	S float32 `json:"s"`
	// A is the accumulated absolute rotation in radians. Never negative.
	A float32 `json:"a"`
	// Pose is the displacement relative to where the accumulation started.
	Pose spatialmath.Pose2D `json:"pose"`
}

// Zero is the neutral odometry record.
var Zero = Odometry{Pose: spatialmath.Identity()}

// FromTwist integrates an already scaled twist: V is the distance and W the angle covered
// during one tick at constant twist. The chassis moves along a circular arc, or a straight
// segment when the angle is negligible.
func FromTwist(t chassis.Twist) Odometry {
	s, theta := t.V, t.W
	a := utils.Abs32(theta)

	var pose spatialmath.Pose2D
	if a < utils.Epsilon32 {
		pose = spatialmath.Pose2D{X: s}
	} else {
		k := s / theta
		pose = spatialmath.NewPose2D(utils.Sin32(theta)*k, (1-utils.Cos32(theta))*k, theta)
	}
	return Odometry{S: utils.Abs32(s), A: a, Pose: pose}
}

// Integrate holds the twist constant for dt and integrates it.
func Integrate(t chassis.Twist, dt time.Duration) Odometry {
	return FromTwist(t.Scale(float32(dt.Seconds())))
}

// FromWheels integrates already scaled wheel rotations (radians turned during the tick).
func FromWheels(m chassis.Model, w chassis.Wheels) Odometry {
	return FromTwist(m.WheelsToTwist(w))
}

// FromPhysical integrates an already scaled command (Speed is the distance of the fastest
// wheel during the tick).
func FromPhysical(m chassis.Model, p chassis.Physical) Odometry {
	return FromTwist(m.PhysicalToTwist(p))
}

// Add returns o followed by b.
func (o Odometry) Add(b Odometry) Odometry {
	o.Accumulate(b)
	return o
}

// Accumulate appends the increment b to o in place.
func (o *Odometry) Accumulate(b Odometry) {
	o.S += b.S
	o.A += b.A
	o.Pose = spatialmath.Compose(o.Pose, b.Pose)
}

func (o Odometry) String() string {
	return fmt.Sprintf("Odometry: { s: %v, a: %v, x: %v, y: %v, theta: %v }",
		o.S, o.A, o.Pose.X, o.Pose.Y, o.Pose.Theta)
}
