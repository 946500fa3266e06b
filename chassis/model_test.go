package chassis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
)

const eps = 1e-5

var approx = cmp.Options{cmpopts.EquateApprox(0, eps), cmpopts.EquateNaNs()}

func testModel() Model {
	return NewModel(0.4, 0.3, 0.1)
}

func TestCriticalRudder(t *testing.T) {
	m := testModel()
	test.That(t, m.CriticalRudder(), test.ShouldAlmostEqual, math.Atan2(0.025, 0.3), eps)
	test.That(t, m.CriticalRudder(), test.ShouldAlmostEqual, 0.0831, 1e-4)

	def := DefaultModel()
	test.That(t, def.Width, test.ShouldEqual, float32(0.465))
	test.That(t, def.Length, test.ShouldEqual, float32(0.355))
	test.That(t, def.Wheel, test.ShouldEqual, float32(0.105))
	test.That(t, def.CriticalRudder(), test.ShouldBeGreaterThan, 0)
	test.That(t, def.CriticalRudder(), test.ShouldBeLessThan, math.Pi/2)
}

func TestSentinels(t *testing.T) {
	test.That(t, Released.IsReleased(), test.ShouldBeTrue)
	test.That(t, Released.IsStatic(), test.ShouldBeTrue)
	test.That(t, Zero.IsReleased(), test.ShouldBeFalse)
	test.That(t, Zero.IsStatic(), test.ShouldBeTrue)

	negZero := float32(math.Copysign(0, -1))
	test.That(t, Physical{Speed: negZero}.IsStatic(), test.ShouldBeTrue)
	test.That(t, Physical{Speed: 0.1}.IsStatic(), test.ShouldBeFalse)

	test.That(t, Released.String(), test.ShouldEqual, "Physical{speed: 0, released}")
	test.That(t, Physical{Speed: 0.5, Rudder: 0.25}.String(), test.ShouldEqual, "Physical{speed: 0.5, rudder: 0.25}")
}

func TestPhysicalToTwist(t *testing.T) {
	m := testModel()

	t.Run("sharp left turn is limited by the rear wheel", func(t *testing.T) {
		tw := m.PhysicalToTwist(Physical{Speed: 0.5, Rudder: math.Pi / 4})
		test.That(t, tw.W, test.ShouldAlmostEqual, -1.1785113, eps)
		test.That(t, tw.V, test.ShouldAlmostEqual, 0.35355339, eps)
	})

	t.Run("sharp right turn mirrors the left", func(t *testing.T) {
		tw := m.PhysicalToTwist(Physical{Speed: 0.5, Rudder: -math.Pi / 4})
		test.That(t, tw.W, test.ShouldAlmostEqual, 1.1785113, eps)
		test.That(t, tw.V, test.ShouldAlmostEqual, 0.35355339, eps)
	})

	t.Run("shallow left turn is limited by the left wheel", func(t *testing.T) {
		p := Physical{Speed: 0.5, Rudder: 0.05}
		tw := m.PhysicalToTwist(p)
		rChassis := -0.3 / math.Tan(0.05)
		w := 0.5 / (rChassis - 0.2)
		test.That(t, tw.W, test.ShouldAlmostEqual, w, eps)
		test.That(t, tw.V, test.ShouldAlmostEqual, w*rChassis, eps)

		// the left wheel runs at exactly the commanded ground speed
		wheels := m.TwistToWheels(tw)
		test.That(t, wheels.Left*m.Wheel, test.ShouldAlmostEqual, 0.5, eps)
		test.That(t, math.Abs(float64(wheels.Right)), test.ShouldBeLessThan, math.Abs(float64(wheels.Left)))
	})

	t.Run("shallow right turn is limited by the right wheel", func(t *testing.T) {
		wheels := m.PhysicalToWheels(Physical{Speed: 0.5, Rudder: -0.05})
		test.That(t, wheels.Right*m.Wheel, test.ShouldAlmostEqual, 0.5, eps)
		test.That(t, math.Abs(float64(wheels.Left)), test.ShouldBeLessThan, math.Abs(float64(wheels.Right)))
	})

	t.Run("straight", func(t *testing.T) {
		test.That(t, m.PhysicalToTwist(Physical{Speed: -0.3, Rudder: 0}), test.ShouldResemble, Twist{V: -0.3})
		negZero := float32(math.Copysign(0, -1))
		test.That(t, m.PhysicalToTwist(Physical{Speed: 0.3, Rudder: negZero}), test.ShouldResemble, Twist{V: 0.3})
	})

	t.Run("released and zero produce no motion", func(t *testing.T) {
		test.That(t, m.PhysicalToTwist(Released), test.ShouldResemble, Twist{})
		test.That(t, m.PhysicalToTwist(Physical{Speed: 1, Rudder: Released.Rudder}), test.ShouldResemble, Twist{})
		test.That(t, m.PhysicalToTwist(Zero), test.ShouldResemble, Twist{})
	})
}

func TestTwistToPhysical(t *testing.T) {
	m := testModel()

	test.That(t, m.TwistToPhysical(Twist{}).IsReleased(), test.ShouldBeTrue)
	test.That(t, m.TwistToPhysical(Twist{}).IsStatic(), test.ShouldBeTrue)
	test.That(t, m.TwistToPhysical(Twist{V: 0.2}), test.ShouldResemble, Physical{Speed: 0.2})

	t.Run("rudder sign follows the turn direction", func(t *testing.T) {
		for _, tc := range []struct {
			tw       Twist
			positive bool
		}{
			{Twist{V: 0.3, W: -1}, true},
			{Twist{V: -0.3, W: 1}, true},
			{Twist{V: 0.3, W: 1}, false},
			{Twist{V: -0.3, W: -1}, false},
		} {
			p := m.TwistToPhysical(tc.tw)
			test.That(t, p.Rudder > 0, test.ShouldEqual, tc.positive)
			test.That(t, math.Abs(float64(p.Rudder)), test.ShouldBeLessThanOrEqualTo, math.Pi/2)
		}
	})

	t.Run("spin in place", func(t *testing.T) {
		p := m.TwistToPhysical(Twist{V: 0, W: 1})
		test.That(t, p.Rudder, test.ShouldAlmostEqual, -math.Pi/2, eps)
		test.That(t, p.Speed, test.ShouldAlmostEqual, 0.3, eps)
	})
}

func TestWheelsToTwist(t *testing.T) {
	m := testModel()
	test.That(t, cmp.Equal(m.WheelsToTwist(Wheels{Left: 1, Right: 1}), Twist{V: 0.1}, approx), test.ShouldBeTrue)
	test.That(t, cmp.Equal(m.WheelsToTwist(Wheels{Left: -1, Right: 1}), Twist{W: 0.5}, approx), test.ShouldBeTrue)
	test.That(t, cmp.Equal(m.TwistToWheels(Twist{V: 0.1}), Wheels{Left: 1, Right: 1}, approx), test.ShouldBeTrue)
	test.That(t, cmp.Equal(m.TwistToWheels(Twist{W: 0.5}), Wheels{Left: -1, Right: 1}, approx), test.ShouldBeTrue)
}

func TestWheelsRoundTrip(t *testing.T) {
	m := testModel()
	//nolint:gosec
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		w := Wheels{Left: rng.Float32()*20 - 10, Right: rng.Float32()*20 - 10}
		restored := m.TwistToWheels(m.WheelsToTwist(w))
		test.That(t, restored.Left, test.ShouldAlmostEqual, w.Left, 1e-5)
		test.That(t, restored.Right, test.ShouldAlmostEqual, w.Right, 1e-5)

		tw := Twist{V: rng.Float32()*2 - 1, W: rng.Float32()*4 - 2}
		restoredTwist := m.WheelsToTwist(m.TwistToWheels(tw))
		test.That(t, restoredTwist.V, test.ShouldAlmostEqual, tw.V, 1e-5)
		test.That(t, restoredTwist.W, test.ShouldAlmostEqual, tw.W, 1e-5)

		k := rng.Float32()*4 - 2
		scaled := m.WheelsToTwist(w.Scale(k))
		expected := m.WheelsToTwist(w).Scale(k)
		test.That(t, scaled.V, test.ShouldAlmostEqual, expected.V, 1e-4)
		test.That(t, scaled.W, test.ShouldAlmostEqual, expected.W, 1e-4)
	}
}

func TestPhysicalRoundTrip(t *testing.T) {
	m := testModel()
	speeds := []float32{-1, -0.5, -0.1, 0.1, 0.5, 1}
	rudders := []float32{
		-math.Pi/2 + 0.01, -math.Pi / 4, -0.2, -0.05, 0,
		0.05, 0.2, math.Pi / 4, math.Pi/2 - 0.01, Released.Rudder,
		m.CriticalRudder() * 0.99, m.CriticalRudder() * 1.01,
		-m.CriticalRudder() * 0.99, -m.CriticalRudder() * 1.01,
	}

	for _, speed := range speeds {
		for _, rudder := range rudders {
			p := Physical{Speed: speed, Rudder: rudder}
			expected := p
			if p.IsReleased() {
				expected = Released
			}

			viaTwist := m.TwistToPhysical(m.PhysicalToTwist(p))
			test.That(t, cmp.Equal(viaTwist, expected, approx), test.ShouldBeTrue)

			viaWheels := m.WheelsToPhysical(m.PhysicalToWheels(p))
			test.That(t, cmp.Equal(viaWheels, expected, approx), test.ShouldBeTrue)
		}
	}

	test.That(t, m.TwistToPhysical(m.PhysicalToTwist(Zero)).IsReleased(), test.ShouldBeTrue)
	test.That(t, m.WheelsToPhysical(m.PhysicalToWheels(Released)).IsReleased(), test.ShouldBeTrue)
}
