package predict

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/odometry"
)

func testTrajectoryPredictor() TrajectoryPredictor {
	return NewTrajectoryPredictor(period, chassis.NewModel(0.4, 0.3, 0.1), NewStatusPredictor(testOptimizer(), period))
}

func TestTrajectoryPredictorNext(t *testing.T) {
	tp := testTrajectoryPredictor()

	dt, inc, ok := tp.Next()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, dt, test.ShouldEqual, time.Duration(0))
	test.That(t, inc, test.ShouldResemble, odometry.Zero)

	tp.Predictor.Target = chassis.Physical{Speed: 0.5, Rudder: 0}
	dt, inc, ok = tp.Next()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, dt, test.ShouldEqual, period)
	test.That(t, inc.S, test.ShouldAlmostEqual, 0.048*0.04, 1e-7)
	test.That(t, inc.Pose.X, test.ShouldAlmostEqual, 0.048*0.04, 1e-7)
	test.That(t, inc.Pose.Y, test.ShouldEqual, float32(0))
	test.That(t, inc.A, test.ShouldEqual, float32(0))
}

func TestForecastBraking(t *testing.T) {
	tp := testTrajectoryPredictor()
	tp.Predictor.Current = chassis.Physical{Speed: 0.4, Rudder: 0}

	samples := Forecast(tp, 0)
	test.That(t, len(samples), test.ShouldEqual, 9)

	last := samples[len(samples)-1]
	test.That(t, last.Elapsed, test.ShouldEqual, 9*period)
	test.That(t, last.Command, test.ShouldResemble, chassis.Zero)
	test.That(t, last.Increment.S, test.ShouldEqual, float32(0))
	// 0.04 s * (0.352 + 0.304 + ... + 0.016)
	test.That(t, last.Odometry.S, test.ShouldAlmostEqual, 0.05888, 1e-5)
	test.That(t, last.Odometry.Pose.X, test.ShouldAlmostEqual, 0.05888, 1e-5)
	test.That(t, last.Odometry.Pose.Y, test.ShouldEqual, float32(0))

	// the forecast ran on a copy
	test.That(t, tp.Predictor.Current, test.ShouldResemble, chassis.Physical{Speed: 0.4, Rudder: 0})
}

func TestForecastTurning(t *testing.T) {
	tp := testTrajectoryPredictor()
	target := chassis.Physical{Speed: 0.3, Rudder: math.Pi / 4}
	tp.Predictor.Target = target

	samples := Forecast(tp, 200)
	test.That(t, len(samples), test.ShouldEqual, 200)

	for i := 1; i < len(samples); i++ {
		test.That(t, samples[i].Odometry.S, test.ShouldBeGreaterThanOrEqualTo, samples[i-1].Odometry.S)
		test.That(t, samples[i].Odometry.A, test.ShouldBeGreaterThanOrEqualTo, samples[i-1].Odometry.A)
	}

	last := samples[len(samples)-1]
	test.That(t, last.Command.Rudder, test.ShouldEqual, target.Rudder)
	test.That(t, last.Odometry.A, test.ShouldBeGreaterThan, float32(0))

	// at steady state each tick turns by the commanded twist
	steady := tp.Model.PhysicalToTwist(last.Command).Scale(float32(period.Seconds()))
	test.That(t, last.Increment.A, test.ShouldAlmostEqual, math.Abs(float64(steady.W)), 1e-6)
	test.That(t, math.Signbit(float64(last.Increment.Pose.Theta)), test.ShouldEqual, math.Signbit(float64(steady.W)))
}

func TestTrajectoryAllMatchesForecast(t *testing.T) {
	tp := testTrajectoryPredictor()
	tp.Predictor.Current = chassis.Physical{Speed: 0.3, Rudder: -0.2}
	samples := Forecast(tp, 0)

	total := odometry.Zero
	var elapsed time.Duration
	for dt, inc := range tp.All() {
		elapsed += dt
		total.Accumulate(inc)
	}
	last := samples[len(samples)-1]
	test.That(t, elapsed, test.ShouldEqual, last.Elapsed)
	test.That(t, total, test.ShouldResemble, last.Odometry)
	test.That(t, tp.Predictor.Done(), test.ShouldBeTrue)
}
