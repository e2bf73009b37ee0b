package field

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

type recordingSurface struct {
	clears int
	disks  int
	alphas []float64
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.alphas = r.alphas[:0]
}

func (r *recordingSurface) FillDisk(_, _, _, alpha float64) {
	r.disks++
	r.alphas = append(r.alphas, alpha)
}

func newTestSimulator(cfg Config, seed int64, opts ...Option) *Simulator {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(seed)))}, opts...)
	return New(cfg, opts...)
}

func TestInitializePopulation(t *testing.T) {
	s := newTestSimulator(DefaultConfig(), 1)
	s.Initialize(160, 800, 600)
	if s.Len() != 160 {
		t.Fatalf("len = %d, want 160", s.Len())
	}
	for i, p := range s.Particles() {
		if p.Z <= 0 || p.BaseRadius <= 0 || p.Speed <= 0 {
			t.Fatalf("particle %d spawned dead: %+v", i, p)
		}
	}
}

func TestTickRunsThousandFrames(t *testing.T) {
	s := newTestSimulator(DefaultConfig(), 42)
	s.Initialize(160, 800, 600)
	surface := &recordingSurface{}
	for i := 0; i < 1000; i++ {
		s.Tick(surface)
	}
	if s.Len() != 160 {
		t.Fatalf("len = %d, want 160", s.Len())
	}
	for i, p := range s.Particles() {
		if p.Z <= 0 || p.Z > 800 {
			t.Fatalf("particle %d depth %v outside (0, 800]", i, p.Z)
		}
		if p.BaseRadius <= 0 || p.Speed <= 0 {
			t.Fatalf("particle %d lost its size or speed: %+v", i, p)
		}
	}
	if surface.clears != 1000 {
		t.Fatalf("clears = %d, want 1000", surface.clears)
	}
	if surface.disks != 160*1000 {
		t.Fatalf("disks = %d, want %d", surface.disks, 160*1000)
	}
	for _, a := range surface.alphas {
		if a < 0 || a > 1 {
			t.Fatalf("alpha %v outside [0, 1]", a)
		}
	}
	st := s.Stats()
	if st.Frames != 1000 || st.Respawns == 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestTickRespawnsCrossedParticle(t *testing.T) {
	s := newTestSimulator(DefaultConfig(), 3)
	s.Initialize(1, 800, 600)
	s.particles[0] = Particle{Z: 0.5, Speed: 2, BaseRadius: 1, Boost: 1}
	s.Tick(nil)
	p := s.particles[0]
	// Whether or not the fresh particle is also culled, it sits in the far band.
	if p.Z < 200 || p.Z >= 800 {
		t.Fatalf("depth after respawn = %v, want a far-band value", p.Z)
	}
	if s.Stats().Respawns == 0 {
		t.Fatal("respawn was not counted")
	}
}

func TestBurstEvictsOldest(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSimulator(cfg, 9)
	s.Initialize(160, 800, 600)
	before := s.Particles()

	s.Burst(400, 300, 20)

	after := s.Particles()
	if len(after) != 160 {
		t.Fatalf("len = %d, want 160", len(after))
	}
	for i := 0; i < 140; i++ {
		if after[i].X != before[i+20].X || after[i].Z != before[i+20].Z {
			t.Fatalf("slot %d is not the surviving particle %d", i, i+20)
		}
	}
	spawnZ := cfg.MaxDepth * cfg.BurstDepthRatio
	for i := 140; i < 160; i++ {
		p := after[i]
		if p.Z != spawnZ {
			t.Fatalf("burst particle %d depth = %v, want %v", i, p.Z, spawnZ)
		}
		if math.Abs(p.X) > cfg.BurstJitter/2 || math.Abs(p.Y) > cfg.BurstJitter/2 {
			t.Fatalf("burst particle %d at (%v, %v) too far from the pointer", i, p.X, p.Y)
		}
		if p.BaseRadius < 0.4*0.25 || p.BaseRadius >= 1.6*0.25 {
			t.Fatalf("burst particle %d radius %v not scaled", i, p.BaseRadius)
		}
	}
}

func TestBurstInverseProjectsPointer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BurstJitter = 0
	s := newTestSimulator(cfg, 5)
	s.Initialize(10, 800, 600)
	s.Burst(600, 100, 1)
	p := s.particles[len(s.particles)-1]
	p.project(800, 600, cfg.FOV)
	if math.Abs(p.ScreenX-600) > eps || math.Abs(p.ScreenY-100) > eps {
		t.Fatalf("burst particle projects to (%v, %v), want (600, 100)", p.ScreenX, p.ScreenY)
	}
}

func TestBurstBoostsExistingParticles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Boost = true
	s := newTestSimulator(cfg, 11)
	s.Initialize(50, 800, 600)
	s.Burst(400, 300, 5)
	for i := 0; i < 45; i++ {
		if s.particles[i].Boost != cfg.BurstBoost {
			t.Fatalf("particle %d boost = %v, want %v", i, s.particles[i].Boost, cfg.BurstBoost)
		}
	}
	for i := 45; i < 50; i++ {
		if s.particles[i].Boost != 1 {
			t.Fatalf("new particle %d boost = %v, want 1", i, s.particles[i].Boost)
		}
	}
}

func TestBurstLeavesBoostByDefault(t *testing.T) {
	s := newTestSimulator(DefaultConfig(), 11)
	s.Initialize(50, 800, 600)
	s.Burst(400, 300, 5)
	for i, p := range s.particles {
		if p.Boost != 1 {
			t.Fatalf("particle %d boost = %v, want 1", i, p.Boost)
		}
	}
	s.Tick(nil)
	for i, p := range s.particles {
		if p.Boost != 1 {
			t.Fatalf("particle %d boost after tick = %v, want 1", i, p.Boost)
		}
	}
}

func TestBurstDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Burst = false
	s := newTestSimulator(cfg, 2)
	s.Initialize(10, 800, 600)
	before := s.Particles()
	s.Burst(400, 300, 20)
	after := s.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("disabled burst changed the population")
		}
	}
}

func TestTickDrainsQueuedBursts(t *testing.T) {
	s := newTestSimulator(DefaultConfig(), 4)
	s.Initialize(160, 800, 600)
	s.Input().TriggerBurst(100, 100)
	s.Input().TriggerBurst(700, 500)
	s.Tick(nil)
	if got := s.Stats().Bursts; got != 2 {
		t.Fatalf("bursts = %d, want 2", got)
	}
	if s.Len() != 160 {
		t.Fatalf("len = %d, want 160", s.Len())
	}
}

func TestTickRepelsAroundPointer(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSimulator(cfg, 6)
	s.Initialize(1, 800, 600)
	// Projects to (450, 300) after one frame at scale 1.
	s.particles[0] = Particle{X: 50, Y: 0, Z: 401, Speed: 1 / cfg.SpeedMultiplier, BaseRadius: 1, Boost: 1}
	s.Input().MovePointer(390, 300)
	s.Tick(nil)
	p := s.particles[0]
	if math.Abs(p.X-59) > 1e-6 || math.Abs(p.Y) > 1e-6 {
		t.Fatalf("world position = (%v, %v), want (59, 0)", p.X, p.Y)
	}
}

func TestTickSuppressesRepelWhilePressing(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSimulator(cfg, 6)
	s.Initialize(1, 800, 600)
	s.particles[0] = Particle{X: 50, Y: 0, Z: 401, Speed: 1 / cfg.SpeedMultiplier, BaseRadius: 1, Boost: 1}
	s.Input().MovePointer(390, 300)
	s.Input().SetPressed(true)
	s.Tick(nil)
	if s.particles[0].X != 50 {
		t.Fatalf("pointer force applied while pressing: x = %v", s.particles[0].X)
	}

	cfg.Features.SuppressWhilePressing = false
	s = newTestSimulator(cfg, 6)
	s.Initialize(1, 800, 600)
	s.particles[0] = Particle{X: 50, Y: 0, Z: 401, Speed: 1 / cfg.SpeedMultiplier, BaseRadius: 1, Boost: 1}
	s.Input().MovePointer(390, 300)
	s.Input().SetPressed(true)
	s.Tick(nil)
	if s.particles[0].X == 50 {
		t.Fatal("pointer force missing with suppression disabled")
	}
}

func TestTickIgnoresAbsentPointer(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSimulator(cfg, 6)
	s.Initialize(1, 800, 600)
	s.particles[0] = Particle{X: 50, Y: 0, Z: 401, Speed: 1 / cfg.SpeedMultiplier, BaseRadius: 1, Boost: 1}
	s.Input().MovePointer(390, 300)
	s.Input().ClearPointer()
	s.Tick(nil)
	if s.particles[0].X != 50 {
		t.Fatalf("force applied with no pointer: x = %v", s.particles[0].X)
	}
}

func TestTickCullsOffscreenParticle(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSimulator(cfg, 8)
	s.Initialize(1, 800, 600)
	// Projects to x = 950, beyond the 100-unit margin.
	s.particles[0] = Particle{X: 550, Y: 0, Z: 401, Speed: 1 / cfg.SpeedMultiplier, BaseRadius: 1, Boost: 1}
	s.Tick(nil)
	if s.particles[0].X == 550 || s.Stats().Respawns != 1 {
		t.Fatalf("off-screen particle was not recycled: %+v", s.particles[0])
	}
}

func TestTickAppliesPendingResize(t *testing.T) {
	s := newTestSimulator(DefaultConfig(), 12)
	s.Initialize(160, 800, 600)
	s.Input().Resize(1920, 1080)
	s.Tick(nil)
	if s.width != 1920 || s.height != 1080 {
		t.Fatalf("viewport = %vx%v, want 1920x1080", s.width, s.height)
	}

	// Respawns draw x and y from the new viewport, past the old 800x600 band.
	wide := false
	for frame := 0; frame < 20; frame++ {
		for i := range s.particles {
			s.particles[i].Z = 0.1
		}
		before := s.Stats().Respawns
		s.Tick(nil)
		if s.Stats().Respawns <= before {
			t.Fatal("forced crossings did not respawn")
		}
		for i, p := range s.particles {
			if math.Abs(p.X) >= 960 || math.Abs(p.Y) >= 540 {
				t.Fatalf("particle %d respawned outside 1920x1080: (%v, %v)", i, p.X, p.Y)
			}
			if math.Abs(p.X) > 400 || math.Abs(p.Y) > 300 {
				wide = true
			}
		}
	}
	if !wide {
		t.Fatal("no respawn reached past the old 800x600 band")
	}

	// Projection centres on the new viewport.
	cfg := s.Config()
	s.particles[0] = Particle{X: 0, Y: 0, Z: 401, Speed: 1 / cfg.SpeedMultiplier, BaseRadius: 1, Boost: 1}
	s.Tick(nil)
	p := s.particles[0]
	if math.Abs(p.ScreenX-960) > eps || math.Abs(p.ScreenY-540) > eps {
		t.Fatalf("centre particle projects to (%v, %v), want (960, 540)", p.ScreenX, p.ScreenY)
	}
}

type failingStepper struct{ closed bool }

func (f *failingStepper) Advance([]Particle, float64, float64) error {
	return errors.New("device lost")
}
func (f *failingStepper) Name() string { return "broken" }
func (f *failingStepper) Close()       { f.closed = true }

func TestStepperFailureFallsBackToCPU(t *testing.T) {
	broken := &failingStepper{}
	s := newTestSimulator(DefaultConfig(), 13, WithStepper(broken))
	s.Initialize(10, 800, 600)
	before := s.Particles()
	s.Tick(nil)
	if s.Err() == nil {
		t.Fatal("expected stepper error to be recorded")
	}
	if !broken.closed {
		t.Fatal("failed stepper was not closed")
	}
	if got := s.Stats().Stepper; got != "cpu" {
		t.Fatalf("stepper = %q, want cpu", got)
	}
	moved := false
	for i, p := range s.Particles() {
		if p.Z != before[i].Z {
			moved = true
		}
	}
	if !moved {
		t.Fatal("no particle advanced after fallback")
	}
}

func TestNormalizedConfig(t *testing.T) {
	cfg := Config{}.normalized()
	d := DefaultConfig()
	if cfg.FOV != d.FOV || cfg.MaxDepth != d.MaxDepth || cfg.SpeedMultiplier != d.SpeedMultiplier {
		t.Fatalf("zero config not filled from defaults: %+v", cfg)
	}
	if cfg.BoostDecay != d.BoostDecay {
		t.Fatalf("boost decay = %v, want %v", cfg.BoostDecay, d.BoostDecay)
	}
}
