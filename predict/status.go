package predict

import (
	"iter"
	"time"

	"go.viam.com/trike/chassis"
)

// DefaultRudderSpeed is the rear wheel slew rate in rad/s assumed by NewStatusPredictor.
const DefaultRudderSpeed = float32(1)

// StatusPredictor steps the issued command toward a target one control tick at a time,
// honoring the optimizer and the rear wheel slew rate.
//
// Current is only advanced by Next; Target may be rewritten between calls and takes effect on
// the following call. A StatusPredictor is a plain value: a copy steps exactly like the
// predictor it was copied from.
type StatusPredictor struct {
	optimizer  Optimizer
	rudderStep float32

	// Current is the command issued on the last tick.
	Current chassis.Physical
	// Target is the command requested by the operator.
	Target chassis.Physical
}

// NewStatusPredictor returns a predictor for the optimizer and control period, with the rear
// wheel slewing at DefaultRudderSpeed. It starts stopped and straight, with a released target.
func NewStatusPredictor(optimizer Optimizer, period time.Duration) StatusPredictor {
	return NewStatusPredictorWithRudderSpeed(optimizer, DefaultRudderSpeed, period)
}

// NewStatusPredictorWithRudderSpeed is like NewStatusPredictor with an explicit rear wheel slew
// rate in rad/s.
func NewStatusPredictorWithRudderSpeed(optimizer Optimizer, rudderSpeed float32, period time.Duration) StatusPredictor {
	return StatusPredictor{
		optimizer:  optimizer,
		rudderStep: rudderSpeed * float32(period.Seconds()),
		Current:    chassis.Zero,
		Target:     chassis.Released,
	}
}

// Optimizer returns the optimizer used for speed.
func (sp *StatusPredictor) Optimizer() Optimizer {
	return sp.optimizer
}

// RudderStep returns the largest rudder change allowed per tick in radians.
func (sp *StatusPredictor) RudderStep() float32 {
	return sp.rudderStep
}

// Done reports whether the predictor has settled: the target is released and the chassis
// stands still.
func (sp *StatusPredictor) Done() bool {
	return sp.Target.IsReleased() && sp.Current.IsStatic()
}

// Next advances one tick and returns the command to issue. It returns false once Done.
func (sp *StatusPredictor) Next() (chassis.Physical, bool) {
	if sp.Done() {
		return chassis.Physical{}, false
	}
	if sp.Current != sp.Target {
		current := sp.Current
		if current.IsReleased() && !sp.Target.IsReleased() {
			// a floating rear wheel is assumed centered
			current.Rudder = 0
		}
		sp.Current = chassis.Physical{
			Speed:  sp.optimizer.OptimizeSpeed(sp.Target, current),
			Rudder: StepLimited(current.Rudder, sp.rudderStep, sp.Target.Rudder),
		}
	}
	return sp.Current, true
}

// All returns the remaining commands as a lazy sequence. The sequence is unbounded while the
// target is not released; stop ranging over it to cancel.
func (sp *StatusPredictor) All() iter.Seq[chassis.Physical] {
	return func(yield func(chassis.Physical) bool) {
		for {
			p, ok := sp.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}
