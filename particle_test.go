package corlena

import (
	"math"
	"testing"
)

func TestSpawnParticlesFiltersRecords(t *testing.T) {
	e := NewEngine(0)
	buf := EncodeParticles(nil,
		ParticleRecord{X: 1, Y: 2, VX: 3, VY: 4, Radius: 5, Life: 1},
		ParticleRecord{Radius: 5, Life: 0},
		ParticleRecord{Radius: 5, Life: -1},
		ParticleRecord{Radius: 0, Life: 2},
		ParticleRecord{Radius: 1, Life: math.NaN()},
	)
	n, res := e.SpawnParticles(buf)
	if res != ResultApplied {
		t.Fatalf("SpawnParticles result = %v", res)
	}
	if n != 2 || e.ParticleCount() != 2 {
		t.Fatalf("accepted = %d, count = %d, want 2", n, e.ParticleCount())
	}
	if r := e.particles.particles[1].radius; r != minParticleRadius {
		t.Errorf("radius = %v, want floored to %v", r, minParticleRadius)
	}
}

func TestSpawnParticlesMalformed(t *testing.T) {
	e := NewEngine(0)
	buf := EncodeParticles(nil, ParticleRecord{Radius: 1, Life: 1})
	n, res := e.SpawnParticles(buf[:5])
	if n != 0 || res != ResultIgnoredMalformed {
		t.Errorf("SpawnParticles = (%d, %v), want (0, ignored)", n, res)
	}
	if e.ParticleCount() != 0 {
		t.Error("no particle should be spawned from a malformed buffer")
	}
}

func TestParticleGravityAndMotion(t *testing.T) {
	e := NewEngine(0)
	e.SetParticleParams([]float32{0, 100, 1, 0.5})
	e.SpawnParticles(EncodeParticles(nil, ParticleRecord{X: 0, Y: 0, VX: 10, Radius: 1, Life: 10}))
	f := e.ProcessFrame(1)
	if len(f.Particles) != ParticleOutStride {
		t.Fatalf("particles len = %d", len(f.Particles))
	}
	assertNear(t, "x", float64(f.Particles[0]), 10)
	assertNear(t, "y", float64(f.Particles[1]), 100)
	assertNear(t, "vy", float64(f.Particles[3]), 100)
	assertNear(t, "life", float64(f.Particles[5]), 9)
}

func TestParticleDamping(t *testing.T) {
	e := NewEngine(0)
	e.SetParticleParams([]float32{0, 0, 0.25, 0.5})
	e.SpawnParticles(EncodeParticles(nil, ParticleRecord{VX: 16, Radius: 1, Life: 10}))
	e.ProcessFrame(0.5)
	assertNear(t, "vx", e.particles.particles[0].vx, 8)
}

func TestParticleBounceOffBottom(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(0, 0, 200, 100, 1, 1, 0, 1))
	e.SetParticleParams([]float32{0, 0, 1, 0.5})
	e.SpawnParticles(EncodeParticles(nil, ParticleRecord{X: 50, Y: 90, VY: 100, Radius: 5, Life: 10}))
	f := e.ProcessFrame(0.1)
	assertNear(t, "y", float64(f.Particles[1]), 95)
	assertNear(t, "vy", float64(f.Particles[3]), -50)
	assertNear(t, "x untouched", float64(f.Particles[0]), 50)
}

func TestParticleBounceAllEdges(t *testing.T) {
	tests := []struct {
		name           string
		rec            ParticleRecord
		wantX, wantY   float64
		wantVX, wantVY float64
	}{
		{"left", ParticleRecord{X: 5, Y: 50, VX: -100, Radius: 2, Life: 1}, 2, 50, 100, 0},
		{"right", ParticleRecord{X: 195, Y: 50, VX: 100, Radius: 2, Life: 1}, 198, 50, -100, 0},
		{"top", ParticleRecord{X: 50, Y: 5, VY: -100, Radius: 2, Life: 1}, 50, 2, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(0)
			e.SetConstraints(constraints(0, 0, 200, 100, 1, 1, 0, 1))
			e.SetParticleParams([]float32{0, 0, 1, 1})
			e.SpawnParticles(EncodeParticles(nil, tt.rec))
			e.ProcessFrame(0.1)
			p := e.particles.particles[0]
			assertNear(t, "x", p.x, tt.wantX)
			assertNear(t, "y", p.y, tt.wantY)
			assertNear(t, "vx", p.vx, tt.wantVX)
			assertNear(t, "vy", p.vy, tt.wantVY)
		})
	}
}

func TestParticlesIgnoreOpenBounds(t *testing.T) {
	e := NewEngine(0)
	e.SetConstraints(constraints(0, 0, 200, inf32, 1, 1, 0, 1))
	e.SpawnParticles(EncodeParticles(nil, ParticleRecord{X: 50, Y: 50, VX: 10000, Radius: 1, Life: 5}))
	e.ProcessFrame(1)
	if x := e.particles.particles[0].x; x != 10050 {
		t.Errorf("x = %v, want no collision with an open bottom", x)
	}
}

func TestParticleLifetimeExpires(t *testing.T) {
	e := NewEngine(0)
	e.SpawnParticles(EncodeParticles(nil,
		ParticleRecord{X: 1, Radius: 1, Life: 0.01},
		ParticleRecord{X: 2, Radius: 1, Life: 1},
		ParticleRecord{X: 3, Radius: 1, Life: 0.015},
		ParticleRecord{X: 4, Radius: 1, Life: 2},
	))
	f := e.ProcessFrame(0.02)
	if len(f.Particles) != 2*ParticleOutStride {
		t.Fatalf("particles len = %d, want 2 survivors", len(f.Particles)/ParticleOutStride)
	}
	xs := map[float32]bool{f.Particles[0]: true, f.Particles[ParticleOutStride]: true}
	if !xs[2] || !xs[4] {
		t.Errorf("survivors = %v, want x=2 and x=4", xs)
	}
}

func TestClearParticles(t *testing.T) {
	e := NewEngine(0)
	e.SpawnParticles(EncodeParticles(nil, ParticleRecord{Radius: 1, Life: 1}))
	e.ClearParticles()
	if f := e.ProcessFrame(0.016); len(f.Particles) != 0 {
		t.Errorf("particles len = %d, want 0", len(f.Particles))
	}
}

func TestSetParticleParamsClamps(t *testing.T) {
	e := NewEngine(0)
	e.SetParticleParams([]float32{1, 2, 5, -3})
	p := e.ParticleParams()
	if p.Gravity != (Vec2{1, 2}) || p.Damping != 1 || p.Restitution != 0 {
		t.Errorf("params = %+v", p)
	}
	if res := e.SetParticleParams([]float32{1, 2}); res != ResultIgnoredMalformed {
		t.Errorf("short buffer = %v, want ignored", res)
	}
}

func TestSeedParticlesDeterministic(t *testing.T) {
	a := NewEngine(0)
	b := NewEngine(0)
	for _, e := range []*Engine{a, b} {
		e.SetConstraints(constraints(0, 0, 320, 240, 1, 1, 0, 1))
		if n := e.SeedParticles(100, 42); n != 100 {
			t.Fatalf("SeedParticles = %d, want 100", n)
		}
	}
	for i := range a.particles.particles {
		pa, pb := a.particles.particles[i], b.particles.particles[i]
		if pa != pb {
			t.Fatalf("particle %d differs: %+v vs %+v", i, pa, pb)
		}
		if pa.x < 0 || pa.x > 320 || pa.y < 0 || pa.y > 240 {
			t.Errorf("particle %d at (%v, %v) outside bounds", i, pa.x, pa.y)
		}
	}
	if a.SeedParticles(0, 1) != 0 || a.ParticleCount() != 0 {
		t.Error("seeding zero particles should clear")
	}
}
