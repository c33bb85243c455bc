package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func TestPositionScenario(t *testing.T) {
	k := Kinematics{Omega: 0.0005}
	center := Vec3{}

	p := k.Position(0, center, 70, 1)
	assert.InDelta(t, 70, p.X, tol)
	assert.InDelta(t, 0, p.Y, tol)
	assert.InDelta(t, 0, p.Z, tol)

	half := math.Pi / 0.0005
	assert.InDelta(t, 6283.19, half, 0.01)
	p = k.Position(half, center, 70, 1)
	assert.InDelta(t, -70, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, tol)
	assert.InDelta(t, 0, p.Z, 1e-6)
}

func TestPositionStaysInPlane(t *testing.T) {
	center := V3(3, -7.5, 12)
	for _, speed := range []float64{-1.5, 0, 0.4, 1, 2} {
		for _, radius := range []float64{0, 1, 50, 160} {
			for ts := 0.0; ts < 50000; ts += 1234.5 {
				p := Default.Position(ts, center, radius, speed)
				assert.Equal(t, center.Y, p.Y, "speed %v radius %v time %v", speed, radius, ts)
				assert.InDelta(t, radius, p.Sub(center).Len(), 1e-9)
			}
		}
	}
}

func TestZeroRadiusStaysAtCenter(t *testing.T) {
	center := V3(1, 2, 3)
	for _, ts := range []float64{-100, 0, 1, 16.7, 1e9} {
		assert.Equal(t, center, Default.Position(ts, center, 0, 2))
	}
}

func TestPositionPeriodic(t *testing.T) {
	for _, speed := range []float64{0.4, 0.8, 1, 2} {
		period := Default.Period(speed)
		assert.InDelta(t, 2*math.Pi/(DefaultOmega*speed), period, tol)
		for _, ts := range []float64{0, 250, 1000, 4321} {
			a := Default.Position(ts, Vec3{}, 100, speed)
			b := Default.Position(ts+period, Vec3{}, 100, speed)
			assert.InDelta(t, a.X, b.X, 1e-6)
			assert.InDelta(t, a.Z, b.Z, 1e-6)
		}
	}
}

func TestPeriodOfStillBody(t *testing.T) {
	assert.True(t, math.IsInf(Default.Period(0), 1))
	assert.True(t, math.IsInf(Kinematics{}.Period(1), 1))
}

func TestSpinStrictlyIncreasing(t *testing.T) {
	s := Spin{Rate: 0.003}
	prev := s.Angle
	for i := 0; i < 5000; i++ {
		cur := s.Step()
		assert.Greater(t, cur, prev)
		prev = cur
	}
	// no wraparound at 2π
	assert.InDelta(t, 15.0, s.Angle, 1e-9)
	assert.Greater(t, s.Angle, 2*math.Pi)
}

func TestVecOps(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	assert.Equal(t, V3(0, 0, 1), x.Cross(y))
	assert.Equal(t, 0.0, x.Dot(y))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, V3(3, 4, 12).Normalize().Len(), tol)
}
