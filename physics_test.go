package corlena

import (
	"math"
	"testing"
)

func constraints(left, top, right, bottom, gridX, gridY, inertia, damping float32) []float32 {
	return []float32{left, top, right, bottom, gridX, gridY, inertia, damping}
}

func TestDefaultConstraintsLeaveNodesAlone(t *testing.T) {
	e := NewEngine(0)
	e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, X: 123.5, Y: 77.25, W: 10, H: 10, VX: 100}))
	e.ProcessFrame(1)
	n, _ := e.Node(1)
	assertNear(t, "x", n.X, 123.5)
	assertNear(t, "y", n.Y, 77.25)
	assertNear(t, "vx", n.VX, 100)
}

func TestInertiaIntegratesVelocity(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(0, 0, inf32, inf32, 1, 1, 1, 1))
	e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, X: 10, Y: 10, W: 5, H: 5, VX: 20, VY: 40}))
	e.ProcessFrame(0.5)
	n, _ := e.Node(1)
	assertNear(t, "x", n.X, 20)
	assertNear(t, "y", n.Y, 30)
	assertNear(t, "vx undamped", n.VX, 20)
}

func TestDampingIsFrameRateIndependent(t *testing.T) {
	one := NewEngine(0)
	two := NewEngine(0)
	for _, e := range []*Engine{one, two} {
		e.SetConstraints(constraints(0, 0, inf32, inf32, 1, 1, 1, 0.5))
		e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, W: 1, H: 1, VX: 10}))
	}
	one.ProcessFrame(1)
	two.ProcessFrame(0.5)
	two.ProcessFrame(0.5)

	a, _ := one.Node(1)
	b, _ := two.Node(1)
	assertNear(t, "one-step vx", a.VX, 5)
	assertNear(t, "two-step vx", b.VX, 5)
}

func TestDampedVelocitySnapsToZero(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(0, 0, inf32, inf32, 1, 1, 1, 0.5))
	e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, X: 100, Y: 100, W: 1, H: 1, VX: 0.0015, VY: -0.0015}))
	e.ProcessFrame(1)
	n, _ := e.Node(1)
	if n.VX != 0 || n.VY != 0 {
		t.Errorf("velocity = (%v, %v), want exact zero below epsilon", n.VX, n.VY)
	}
}

func TestGridSnap(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(0, 0, inf32, inf32, 10, 1, 0, 1))
	e.UpsertNodes(EncodeNodes(nil,
		NodeRecord{ID: 1, X: 14, Y: 13.4, W: 1, H: 1},
		NodeRecord{ID: 2, X: 16, Y: 16, W: 1, H: 1},
	))
	e.ProcessFrame(0.016)
	a, _ := e.Node(1)
	b, _ := e.Node(2)
	assertNear(t, "a.x", a.X, 10)
	assertNearTol(t, "a.y unsnapped", a.Y, 13.4, 1e-5)
	assertNear(t, "b.x", b.X, 20)
}

func TestGridSnapSkippedWhileGrabbing(t *testing.T) {
	e := newTestEngine(t)
	e.SetConstraints(constraints(0, 0, inf32, inf32, 10, 10, 0, 1))
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 1))
	e.ApplyPointers(EncodePointer(nil, 1, 18, 18, 1))
	e.ProcessFrame(0.016)
	n, _ := e.Node(1)
	assertNear(t, "x while grabbing", n.X, 13)

	e.ApplyPointers(EncodePointer(nil, 1, 18, 18, 0))
	e.ProcessFrame(0.016)
	assertNear(t, "x after release", n.X, 10)
}

func TestBoundsClampHoldsEveryFrame(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(0, 0, 100, inf32, 1, 1, 1, 1))
	e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, X: 200, Y: 5, W: 10, H: 10, VX: 500}))
	for i := 0; i < 10; i++ {
		f := e.ProcessFrame(0.1)
		x := float64(f.Transforms[1])
		if x > 100-0-10 || x < 0 {
			t.Fatalf("frame %d: x = %v, want within [0, 90]", i, x)
		}
	}
	n, _ := e.Node(1)
	n.VX = -5000
	for i := 0; i < 5; i++ {
		e.ProcessFrame(0.1)
		if n.X < 0 {
			t.Fatalf("x = %v, want >= left", n.X)
		}
	}
}

func TestBoundsClampWhileGrabbing(t *testing.T) {
	e := newTestEngine(t)
	e.SetConstraints(constraints(0, 0, 50, 50, 1, 1, 0, 1))
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 1))
	e.ApplyPointers(EncodePointer(nil, 1, 500, -500, 1))
	f := e.ProcessFrame(0.016)
	assertNear(t, "x", float64(f.Transforms[1]), 40)
	assertNear(t, "y", float64(f.Transforms[2]), 0)
}

func TestBoundsNarrowerThanNode(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(20, 0, 25, inf32, 1, 1, 0, 1))
	e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, X: 60, W: 10, H: 10}))
	e.ProcessFrame(0.016)
	n, _ := e.Node(1)
	assertNear(t, "x pinned to left", n.X, 20)
}

func TestSetConstraintsSanitizes(t *testing.T) {
	e := NewEngine(0)
	nan := float32(math.NaN())
	if res := e.SetConstraints(constraints(nan, 0, nan, 100, -5, 4, -1, 3)); res != ResultApplied {
		t.Fatalf("SetConstraints = %v", res)
	}
	c := e.Constraints()
	if c.Left != 0 || !math.IsInf(c.Right, 1) || c.Bottom != 100 {
		t.Errorf("bounds = %+v", c.Bounds)
	}
	if c.GridX != 0 || c.GridY != 4 || c.Inertia != 0 || c.Damping != 1 {
		t.Errorf("constraints = %+v", c)
	}
	if res := e.SetConstraints([]float32{0, 0, 100, 100}); res != ResultIgnoredMalformed {
		t.Errorf("short buffer = %v, want ignored", res)
	}
	if e.Constraints().Bottom != 100 {
		t.Error("ignored buffer must not change constraints")
	}
}

func TestNonPositiveDTFreezesMotion(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		e := NewEngine(0)
		e.SetConstraints(constraints(0, 0, inf32, inf32, 1, 1, 1, 0.5))
		e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 1, X: 10, W: 1, H: 1, VX: 100}))
		e.ProcessFrame(dt)
		n, _ := e.Node(1)
		if n.X != 10 || n.VX != 100 {
			t.Errorf("dt=%v: node = (%v, vx %v), want unchanged", dt, n.X, n.VX)
		}
		if e.Clock() != 0 {
			t.Errorf("dt=%v: clock = %v, want 0", dt, e.Clock())
		}
	}
}
