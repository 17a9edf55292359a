package corlena

import (
	"math"
	"math/rand/v2"
)

// minParticleRadius is the smallest radius a spawned particle can have.
const minParticleRadius = 0.01

// particle holds per-particle simulation state. Particles have no identity
// beyond their slot.
type particle struct {
	x, y   float64
	vx, vy float64
	radius float64
	life   float64 // remaining lifetime in seconds
}

// ParticleParams are the global particle simulation parameters.
type ParticleParams struct {
	Gravity     Vec2    // constant acceleration in world units per second squared
	Damping     float64 // per-second velocity retention in [0, 1]
	Restitution float64 // fraction of speed kept after a bounce, in [0, 1]
}

// DefaultParticleParams are the particle parameters of a fresh engine.
var DefaultParticleParams = ParticleParams{
	Damping:     1,
	Restitution: 0.5,
}

// particleSystem is a gravity/damping/bounce/lifetime simulation that runs
// independently of nodes.
type particleSystem struct {
	params    ParticleParams
	particles []particle
}

func (ps *particleSystem) reset() {
	ps.params = DefaultParticleParams
	ps.particles = ps.particles[:0]
}

// spawn accepts each record with a positive finite life, flooring its radius.
func (ps *particleSystem) spawn(records []ParticleRecord) int {
	accepted := 0
	for _, r := range records {
		if !(r.Life > 0) || math.IsInf(r.Life, 0) {
			continue
		}
		radius := r.Radius
		if !(radius >= minParticleRadius) {
			radius = minParticleRadius
		}
		ps.particles = append(ps.particles, particle{
			x: r.X, y: r.Y, vx: r.VX, vy: r.VY,
			radius: radius, life: r.Life,
		})
		accepted++
	}
	return accepted
}

// update advances all particles by dt, bouncing them off bounds when both far
// edges are finite, and drops those whose life ran out. Survivors keep their
// relative order.
func (ps *particleSystem) update(dt float64, b Bounds) {
	gx := ps.params.Gravity.X * dt
	gy := ps.params.Gravity.Y * dt
	damped := ps.params.Damping < 1
	damp := 1.0
	if damped {
		damp = math.Pow(ps.params.Damping, dt)
	}
	collide := b.Finite()
	rest := ps.params.Restitution

	alive := 0
	for i := range ps.particles {
		p := ps.particles[i]

		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt
		if damped {
			p.vx *= damp
			p.vy *= damp
		}

		if collide {
			if p.x-p.radius < b.Left {
				p.x = b.Left + p.radius
				p.vx = -p.vx * rest
			} else if p.x+p.radius > b.Right {
				p.x = b.Right - p.radius
				p.vx = -p.vx * rest
			}
			if p.y-p.radius < b.Top {
				p.y = b.Top + p.radius
				p.vy = -p.vy * rest
			} else if p.y+p.radius > b.Bottom {
				p.y = b.Bottom - p.radius
				p.vy = -p.vy * rest
			}
		}

		p.life -= dt
		if p.life > 0 {
			ps.particles[alive] = p
			alive++
		}
	}
	clear(ps.particles[alive:])
	ps.particles = ps.particles[:alive]
}

// --- Engine surface ---

// SetParticleParams decodes a particle parameter buffer
// (stride ParticleParamsStride). The last record wins. Damping and
// restitution are clamped to [0, 1].
func (e *Engine) SetParticleParams(buf []float32) Result {
	res := checkStride(len(buf), ParticleParamsStride)
	if res != ResultApplied {
		e.noteIgnored("particle params", res, len(buf))
		return res
	}
	r := lastRecord(buf, ParticleParamsStride)
	e.particles.params = ParticleParams{
		Gravity:     Vec2{X: finiteOr(r[0], 0), Y: finiteOr(r[1], 0)},
		Damping:     clamp01(r[2], DefaultParticleParams.Damping),
		Restitution: clamp01(r[3], DefaultParticleParams.Restitution),
	}
	return ResultApplied
}

// ParticleParams returns the current particle parameters.
func (e *Engine) ParticleParams() ParticleParams {
	return e.particles.params
}

// SpawnParticles decodes a spawn buffer (stride ParticleSpawnStride) and
// returns how many particles were accepted. Records with a non-positive life
// are discarded.
func (e *Engine) SpawnParticles(buf []float32) (int, Result) {
	res := checkStride(len(buf), ParticleSpawnStride)
	if res != ResultApplied {
		e.noteIgnored("spawn particles", res, len(buf))
		return 0, res
	}
	e.spawnBuf = decodeParticles(buf, e.spawnBuf[:0])
	return e.particles.spawn(e.spawnBuf), ResultApplied
}

// ClearParticles drops all particles.
func (e *Engine) ClearParticles() {
	e.particles.particles = e.particles.particles[:0]
}

// ParticleCount returns the number of live particles.
func (e *Engine) ParticleCount() int {
	return len(e.particles.particles)
}

// seedExtent is the side of the square particles are seeded into when the
// bounds are open.
const seedExtent = 1024

// SeedParticles replaces all particles with n pseudo-random ones derived from
// seed, placed inside the current bounds. The same seed always produces the
// same particles. It returns the number of particles created.
func (e *Engine) SeedParticles(n int, seed uint64) int {
	e.ClearParticles()
	if n <= 0 {
		return 0
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	b := e.constraints.Bounds
	left, top := finiteOr(b.Left, 0), finiteOr(b.Top, 0)
	if math.IsInf(left, 0) {
		left = 0
	}
	if math.IsInf(top, 0) {
		top = 0
	}
	w, h := float64(seedExtent), float64(seedExtent)
	if b.Finite() {
		w = math.Max(b.Right-left, 0)
		h = math.Max(b.Bottom-top, 0)
	}

	records := make([]ParticleRecord, n)
	for i := range records {
		records[i] = ParticleRecord{
			X:      left + rng.Float64()*w,
			Y:      top + rng.Float64()*h,
			VX:     (rng.Float64()*2 - 1) * 200,
			VY:     (rng.Float64()*2 - 1) * 200,
			Radius: 1 + rng.Float64()*3,
			Life:   1 + rng.Float64()*4,
		}
	}
	return e.particles.spawn(records)
}
