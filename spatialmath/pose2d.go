// Package spatialmath defines the planar rigid body transforms used for odometry.
package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/trike/utils"
)

// Pose2D is an element of SE(2): a translation in metres followed by a rotation in radians.
// Theta is kept within (-π, π].
type Pose2D struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Theta float32 `json:"theta"`
}

// NewPose2D returns the pose with the given translation and heading.
func NewPose2D(x, y, theta float32) Pose2D {
	return Pose2D{X: x, Y: y, Theta: utils.NormalizeAngle32(theta)}
}

// Identity returns the pose at the origin with zero heading.
func Identity() Pose2D {
	return Pose2D{}
}

// Compose returns the group product a·b, i.e. b expressed in the frame of a.
func Compose(a, b Pose2D) Pose2D {
	sin, cos := utils.Sin32(a.Theta), utils.Cos32(a.Theta)
	return Pose2D{
		X:     a.X + cos*b.X - sin*b.Y,
		Y:     a.Y + sin*b.X + cos*b.Y,
		Theta: utils.NormalizeAngle32(a.Theta + b.Theta),
	}
}

// Inverse returns the pose p⁻¹ such that Compose(p, Inverse(p)) is the identity.
func (p Pose2D) Inverse() Pose2D {
	sin, cos := utils.Sin32(p.Theta), utils.Cos32(p.Theta)
	return Pose2D{
		X:     -cos*p.X - sin*p.Y,
		Y:     sin*p.X - cos*p.Y,
		Theta: utils.NormalizeAngle32(-p.Theta),
	}
}

// Point returns the translation as a point in the ground plane.
func (p Pose2D) Point() r3.Vector {
	return r3.Vector{X: float64(p.X), Y: float64(p.Y)}
}

// Heading returns the unit vector the pose is facing.
func (p Pose2D) Heading() r3.Vector {
	return r3.Vector{X: float64(utils.Cos32(p.Theta)), Y: float64(utils.Sin32(p.Theta))}
}

// PoseAlmostEqual reports whether the two poses match within tol in translation and heading.
func PoseAlmostEqual(a, b Pose2D, tol float32) bool {
	return utils.Float32AlmostEqual(a.X, b.X, tol) &&
		utils.Float32AlmostEqual(a.Y, b.Y, tol) &&
		utils.Float32AlmostEqual(utils.NormalizeAngle32(a.Theta-b.Theta), 0, tol)
}

func (p Pose2D) String() string {
	return fmt.Sprintf("Pose2D{x: %v, y: %v, theta: %v}", p.X, p.Y, p.Theta)
}
