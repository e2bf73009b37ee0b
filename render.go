package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type disk struct {
	x, y, r, alpha float32
}

// diskList records one frame of disks so Update can run the simulation
// and Draw can paint it later. A hidden window keeps its last frame.
type diskList struct {
	disks []disk
}

func (l *diskList) Clear() {
	l.disks = l.disks[:0]
}

func (l *diskList) FillDisk(x, y, radius, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}
	l.disks = append(l.disks, disk{x: float32(x), y: float32(y), r: float32(radius), alpha: float32(alpha)})
}

// Draw paints the background, the recorded disks and the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	for _, d := range g.frame.disks {
		vector.DrawFilledCircle(screen, d.x, d.y, d.r+glowSpread, withAlpha(glowColor, d.alpha*glowStrength), true)
		vector.DrawFilledCircle(screen, d.x, d.y, d.r, withAlpha(particleColor, d.alpha), true)
	}

	if *debugFlag {
		st := g.sim.Stats()
		simMS := g.lastSimDuration.Seconds() * 1000
		paused := ""
		if !g.gate.Visible() {
			paused = " (paused)"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f%s\nParticles: %d/%d\nRespawns: %d  Bursts: %d\nStepper: %s\nSim: %.2f ms",
			ebiten.ActualFPS(), ebiten.ActualTPS(), paused, st.Particles, st.Target, st.Respawns, st.Bursts, st.Stepper, simMS)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// withAlpha scales c to the given opacity as a premultiplied colour.
func withAlpha(c color.RGBA, alpha float32) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float32(c.R) * alpha),
		G: uint8(float32(c.G) * alpha),
		B: uint8(float32(c.B) * alpha),
		A: uint8(float32(c.A) * alpha),
	}
}
