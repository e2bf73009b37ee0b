// Package field simulates the hero particle backdrop: independent point
// masses flying toward the viewer, projected onto a 2D viewport, pushed
// around by the pointer and recycled when they leave the view.
package field

import (
	"fmt"
	"math/rand"
	"time"
)

// Stats summarises the simulator for overlays and logs.
type Stats struct {
	Particles int
	Target    int
	Frames    uint64
	Respawns  uint64
	Bursts    uint64
	Stepper   string
}

// Option customises a Simulator at construction.
type Option func(*Simulator)

// WithRand replaces the time-seeded random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithInput shares an Input with an event source.
func WithInput(in *Input) Option {
	return func(s *Simulator) {
		if in != nil {
			s.input = in
		}
	}
}

// WithStepper replaces the CPU stepper.
func WithStepper(st Stepper) Option {
	return func(s *Simulator) {
		if st != nil {
			s.stepper = st
		}
	}
}

// Simulator owns a particle field. It is not safe for concurrent use;
// event sources talk to it through its Input.
type Simulator struct {
	cfg     Config
	rng     *rand.Rand
	input   *Input
	stepper Stepper
	lastErr error

	particles []Particle
	target    int
	width     float64
	height    float64

	frames   uint64
	respawns uint64
	bursts   uint64
}

// New constructs an empty simulator. Call Initialize before the first Tick.
func New(cfg Config, opts ...Option) *Simulator {
	s := &Simulator{
		cfg:     cfg.normalized(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		input:   NewInput(),
		stepper: NewCPUStepper(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the population with count far-spawned particles and
// makes count the target size.
func (s *Simulator) Initialize(count int, width, height float64) {
	if count < 0 {
		count = 0
	}
	s.target = count
	s.width, s.height = width, height
	s.particles = make([]Particle, count)
	for i := range s.particles {
		s.particles[i].spawnFar(s.rng, width, height, s.cfg.MaxDepth, s.cfg.FarBand)
	}
}

// Resize sets the viewport used by later spawns and projections.
func (s *Simulator) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Input returns the shared pointer state.
func (s *Simulator) Input() *Input { return s.input }

// Config returns the normalised configuration.
func (s *Simulator) Config() Config { return s.cfg }

// Len returns the current population.
func (s *Simulator) Len() int { return len(s.particles) }

// Particles returns a copy of the current population, oldest first.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Err returns the last stepper failure, if the simulator had to fall back
// to the CPU stepper.
func (s *Simulator) Err() error { return s.lastErr }

// Stats returns counters for the current run.
func (s *Simulator) Stats() Stats {
	return Stats{
		Particles: len(s.particles),
		Target:    s.target,
		Frames:    s.frames,
		Respawns:  s.respawns,
		Bursts:    s.bursts,
		Stepper:   s.stepper.Name(),
	}
}

// Burst spawns n small particles around the world position under the
// pointer at a shallow depth, then evicts the oldest particles until the
// population is back at its target.
func (s *Simulator) Burst(px, py float64, n int) {
	if !s.cfg.Features.Burst || n <= 0 {
		return
	}
	if s.cfg.Features.Boost {
		for i := range s.particles {
			s.particles[i].Boost = s.cfg.BurstBoost
		}
	}
	spawnZ := s.cfg.MaxDepth * s.cfg.BurstDepthRatio
	worldX := (px - s.width/2) * (spawnZ / s.cfg.FOV)
	worldY := (py - s.height/2) * (spawnZ / s.cfg.FOV)
	for i := 0; i < n; i++ {
		var p Particle
		p.spawnFar(s.rng, s.width, s.height, s.cfg.MaxDepth, s.cfg.FarBand)
		p.X = worldX + (s.rng.Float64()-0.5)*s.cfg.BurstJitter
		p.Y = worldY + (s.rng.Float64()-0.5)*s.cfg.BurstJitter
		p.Z = spawnZ
		p.BaseRadius *= s.cfg.BurstRadiusScale
		s.particles = append(s.particles, p)
	}
	s.bursts++
	if excess := len(s.particles) - s.target; excess > 0 {
		n := copy(s.particles, s.particles[excess:])
		s.particles = s.particles[:n]
	}
}

// Tick runs one frame: pending input is applied, the surface is cleared,
// then every particle is advanced, projected, pushed by the pointer, drawn
// and culled. A nil surface computes the frame without drawing.
func (s *Simulator) Tick(surface Surface) {
	if surface == nil {
		surface = discardSurface{}
	}
	if size, ok := s.input.takeResize(); ok {
		s.Resize(size.X, size.Y)
	}
	s.input.drainBursts(func(p Point) {
		s.Burst(p.X, p.Y, s.cfg.BurstCount)
	})

	surface.Clear()
	s.advance()

	pointer, hasPointer := s.input.Pointer()
	repel := s.cfg.Features.Repel && hasPointer && s.cfg.PointerRadius > 0
	if repel && s.cfg.Features.SuppressWhilePressing && s.input.Pressed() {
		repel = false
	}

	for i := range s.particles {
		p := &s.particles[i]
		if p.Z <= 0 {
			s.respawn(p)
		}
		p.project(s.width, s.height, s.cfg.FOV)
		if repel {
			p.applyPointerForce(pointer.X, pointer.Y, s.cfg.PointerRadius, s.cfg.PointerForce)
		}
		surface.FillDisk(p.ScreenX, p.ScreenY, p.ScreenRadius, p.Alpha)
		if p.outOfBounds(s.width, s.height, s.cfg.CullMargin) {
			s.respawn(p)
		}
	}
	s.frames++
}

// advance moves every particle forward through the stepper, dropping to
// the CPU stepper for good if the configured one fails.
func (s *Simulator) advance() {
	err := s.stepper.Advance(s.particles, s.cfg.SpeedMultiplier, s.cfg.BoostDecay)
	if err == nil {
		return
	}
	s.lastErr = fmt.Errorf("%s stepper: %w", s.stepper.Name(), err)
	s.stepper.Close()
	s.stepper = NewCPUStepper()
	_ = s.stepper.Advance(s.particles, s.cfg.SpeedMultiplier, s.cfg.BoostDecay)
}

func (s *Simulator) respawn(p *Particle) {
	p.spawnFar(s.rng, s.width, s.height, s.cfg.MaxDepth, s.cfg.FarBand)
	s.respawns++
}

// Close releases the stepper.
func (s *Simulator) Close() {
	s.stepper.Close()
}
