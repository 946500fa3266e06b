package encoder

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestScalerRoundTrip(t *testing.T) {
	for _, k := range []Scaler{Wheel, Rudder} {
		test.That(t, k.RadToPulses(k.PulsesToRad(12345)), test.ShouldEqual, int32(12345))
		for pulses := int32(-100000); pulses <= 100000; pulses += 997 {
			test.That(t, k.RadToPulses(k.PulsesToRad(pulses)), test.ShouldEqual, pulses)
		}
	}
}

func TestScalerConstants(t *testing.T) {
	test.That(t, Wheel.PulsesToRad(4*400*20), test.ShouldAlmostEqual, 2*math.Pi, 1e-5)
	test.That(t, Rudder.PulsesToRad(16384/4), test.ShouldAlmostEqual, math.Pi/2, 1e-6)
	test.That(t, Rudder.RadToPulses(-math.Pi/2), test.ShouldEqual, int32(-4096))
	test.That(t, RudderAngle(RudderPulses(0.5)), test.ShouldAlmostEqual, 0.5, float64(Rudder))
}

func TestRadToPulsesRounding(t *testing.T) {
	half := float32(Rudder) / 2
	test.That(t, Rudder.RadToPulses(float32(Rudder)*2+half*1.01), test.ShouldEqual, int32(3))
	test.That(t, Rudder.RadToPulses(float32(Rudder)*2+half*0.99), test.ShouldEqual, int32(2))
	test.That(t, Rudder.RadToPulses(-(float32(Rudder)*2 + half*1.01)), test.ShouldEqual, int32(-3))
}

func TestWheelsFromPulses(t *testing.T) {
	w := WheelsFromPulses(32000, -16000, time.Second)
	test.That(t, w.Left, test.ShouldAlmostEqual, 2*math.Pi, 1e-5)
	test.That(t, w.Right, test.ShouldAlmostEqual, -math.Pi, 1e-5)

	w = WheelsFromPulses(1280, 640, 40*time.Millisecond)
	test.That(t, w.Left, test.ShouldAlmostEqual, 2*math.Pi, 1e-4)
	test.That(t, w.Right, test.ShouldAlmostEqual, math.Pi, 1e-4)

	left, right := PulsesFromWheels(w, 40*time.Millisecond)
	test.That(t, left, test.ShouldEqual, int32(1280))
	test.That(t, right, test.ShouldEqual, int32(640))

	test.That(t, WheelsFromPulses(10, 10, 0), test.ShouldResemble, WheelsFromPulses(0, 0, time.Second))
}
