package field

import (
	"math"
	"math/rand"
)

// Particle is one point mass in the field. World coordinates are centred
// on the viewport origin; Z is the distance from the viewer.
type Particle struct {
	X, Y       float64
	Z          float64
	BaseRadius float64
	Speed      float64
	Boost      float64

	// Derived every frame by project.
	ScreenX, ScreenY float64
	ScreenRadius     float64
	Alpha            float64
}

// spawnFar reinitialises p at a random position in the far depth band.
func (p *Particle) spawnFar(rng *rand.Rand, width, height, maxDepth, farBand float64) {
	p.X = (rng.Float64() - 0.5) * width
	p.Y = (rng.Float64() - 0.5) * height
	p.Z = rng.Float64()*maxDepth + farBand
	p.BaseRadius = rng.Float64()*1.2 + 0.4
	p.Speed = 1 + rng.Float64()*1.5
	p.Boost = 1
}

// advanceDepth moves the particle toward the viewer and decays any boost.
// It reports whether the particle crossed the viewer plane.
func (p *Particle) advanceDepth(mult, decay float64) bool {
	p.Z -= p.Speed * mult * p.Boost
	if p.Boost > 1 {
		p.Boost *= decay
	}
	return p.Z <= 0
}

// project maps world coordinates onto the viewport. Particles at or behind
// the viewer plane are left untouched and reported as not projected.
func (p *Particle) project(width, height, fov float64) bool {
	if p.Z <= 0 {
		return false
	}
	scale := fov / p.Z
	p.ScreenX = p.X*scale + width/2
	p.ScreenY = p.Y*scale + height/2
	p.ScreenRadius = p.BaseRadius * scale
	p.Alpha = math.Min(1, p.ScreenRadius*0.8)
	if p.Alpha < 0 {
		p.Alpha = 0
	}
	return true
}

// applyPointerForce pushes the particle away from the pointer with a force
// that falls linearly from strength at the pointer to zero at radius.
func (p *Particle) applyPointerForce(px, py, radius, strength float64) {
	dx := p.ScreenX - px
	dy := p.ScreenY - py
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= 0 || dist >= radius {
		return
	}
	force := (1 - dist/radius) * strength
	p.X += (dx / dist) * force
	p.Y += (dy / dist) * force
}

// outOfBounds reports whether the projected position left the viewport
// inflated by margin on every side.
func (p *Particle) outOfBounds(width, height, margin float64) bool {
	return p.ScreenX < -margin ||
		p.ScreenX > width+margin ||
		p.ScreenY < -margin ||
		p.ScreenY > height+margin
}
