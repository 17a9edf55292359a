package corlena

import "math"

// velocityEpsilon is the speed below which damped velocity snaps to zero.
const velocityEpsilon = 1e-3

// Constraints govern node motion: the clamp region, grid snapping, and
// inertia. A grid cell of 1 or less disables snapping on that axis.
type Constraints struct {
	Bounds
	GridX, GridY float64
	Inertia      float64 // >0 enables velocity integration
	Damping      float64 // per-second velocity retention in [0, 1]
}

// DefaultConstraints are the constraints of a fresh engine: unbounded to the
// right and bottom, no grid, no inertia.
var DefaultConstraints = Constraints{
	Bounds:  Unbounded,
	GridX:   1,
	GridY:   1,
	Inertia: 0,
	Damping: 1,
}

// SetConstraints decodes a constraints buffer (stride ConstraintsStride).
// The last record wins. Grid and inertia are floored at zero, damping is
// clamped to [0, 1]. NaN near edges become 0 and NaN far edges become +Inf.
func (e *Engine) SetConstraints(buf []float32) Result {
	res := checkStride(len(buf), ConstraintsStride)
	if res != ResultApplied {
		e.noteIgnored("constraints", res, len(buf))
		return res
	}
	r := lastRecord(buf, ConstraintsStride)
	e.constraints = Constraints{
		Bounds: Bounds{
			Left:   finiteOr(r[0], 0),
			Top:    finiteOr(r[1], 0),
			Right:  finiteOr(r[2], math.Inf(1)),
			Bottom: finiteOr(r[3], math.Inf(1)),
		},
		GridX:   math.Max(0, finiteOr(r[4], 1)),
		GridY:   math.Max(0, finiteOr(r[5], 1)),
		Inertia: math.Max(0, finiteOr(r[6], 0)),
		Damping: clamp01(r[7], 1),
	}
	return ResultApplied
}

// Constraints returns the current motion constraints.
func (e *Engine) Constraints() Constraints {
	return e.constraints
}

// integrateNodes advances every node by dt: inertia and damping for nodes not
// held by a pointer, grid snap for nodes not held, and the bounds clamp for
// all nodes.
func (e *Engine) integrateNodes(dt float64) {
	c := &e.constraints
	useInertia := c.Inertia > 0
	damp := 1.0
	if c.Damping < 1 {
		// Continuous-time decay keeps motion frame-rate independent.
		damp = math.Pow(c.Damping, dt)
	}

	for i := range e.nodes.nodes {
		n := &e.nodes.nodes[i]

		if useInertia && !n.grabbing {
			n.X += n.VX * dt
			n.Y += n.VY * dt
			if c.Damping < 1 {
				n.VX *= damp
				n.VY *= damp
				if math.Abs(n.VX) < velocityEpsilon {
					n.VX = 0
				}
				if math.Abs(n.VY) < velocityEpsilon {
					n.VY = 0
				}
			}
		}

		if !n.grabbing {
			if c.GridX > 1 {
				n.X = math.Round(n.X/c.GridX) * c.GridX
			}
			if c.GridY > 1 {
				n.Y = math.Round(n.Y/c.GridY) * c.GridY
			}
		}

		n.X = clampAxis(n.X, n.W, c.Left, c.Right)
		n.Y = clampAxis(n.Y, n.H, c.Top, c.Bottom)
	}
}
