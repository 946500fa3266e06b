package predict

import (
	"iter"
	"time"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/odometry"
)

// TrajectoryPredictor forecasts the motion, one tick at a time, produced by following the
// commands of its status predictor.
type TrajectoryPredictor struct {
	Period    time.Duration
	Model     chassis.Model
	Predictor StatusPredictor
}

// NewTrajectoryPredictor returns a trajectory predictor for the control period and model.
func NewTrajectoryPredictor(period time.Duration, model chassis.Model, predictor StatusPredictor) TrajectoryPredictor {
	return TrajectoryPredictor{Period: period, Model: model, Predictor: predictor}
}

// Next advances one tick and returns its duration and the odometry increment covered during
// it. It returns false once the status predictor is done.
func (tp *TrajectoryPredictor) Next() (time.Duration, odometry.Odometry, bool) {
	_, inc, ok := tp.step()
	if !ok {
		return 0, inc, false
	}
	return tp.Period, inc, true
}

func (tp *TrajectoryPredictor) step() (chassis.Physical, odometry.Odometry, bool) {
	p, ok := tp.Predictor.Next()
	if !ok {
		return chassis.Physical{}, odometry.Zero, false
	}
	// the distance covered by the fastest wheel this tick
	travelled := chassis.Physical{Speed: p.Speed * float32(tp.Period.Seconds()), Rudder: p.Rudder}
	return p, odometry.FromPhysical(tp.Model, travelled), true
}

// All returns the remaining (tick duration, increment) pairs as a lazy sequence.
func (tp *TrajectoryPredictor) All() iter.Seq2[time.Duration, odometry.Odometry] {
	return func(yield func(time.Duration, odometry.Odometry) bool) {
		for {
			dt, inc, ok := tp.Next()
			if !ok || !yield(dt, inc) {
				return
			}
		}
	}
}

// Sample is one tick of a forecast.
type Sample struct {
	// Elapsed is the time from the start of the forecast to the end of this tick.
	Elapsed time.Duration
	// Command is the command issued during this tick.
	Command chassis.Physical
	// Increment is the motion covered during this tick.
	Increment odometry.Odometry
	// Odometry is the motion accumulated since the start of the forecast.
	Odometry odometry.Odometry
}

// Forecast runs a copy of tp until it is done or limit samples were produced and returns the
// accumulated ribbon. A non-positive limit means no limit, which only terminates if the
// target is released. tp itself is not advanced.
func Forecast(tp TrajectoryPredictor, limit int) []Sample {
	var samples []Sample
	var elapsed time.Duration
	total := odometry.Zero
	for limit <= 0 || len(samples) < limit {
		p, inc, ok := tp.step()
		if !ok {
			break
		}
		elapsed += tp.Period
		total.Accumulate(inc)
		samples = append(samples, Sample{Elapsed: elapsed, Command: p, Increment: inc, Odometry: total})
	}
	return samples
}
