package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"starfield/internal/field"
	"starfield/internal/frameclock"
)

// Game adapts the particle field to ebiten. Update is the frame clock:
// it ticks the simulator into a display list that Draw replays.
type Game struct {
	sim   *field.Simulator
	input *field.Input
	gate  *frameclock.Gate
	frame *diskList

	width, height int

	lastSimDuration time.Duration

	pointer     *field.PointerTracker
	touchIDs    []ebiten.TouchID
	touchStarts []field.Point
	touches     []field.Point

	autoPilot         bool
	autoPilotDeadline time.Time
	autoPilotRand     *rand.Rand
	autoX, autoY      float64
	autoDirX          float64
	autoDirY          float64
	autoFrameCount    int
	autoBurstTimer    int
}

// newGame constructs a Game with a populated field sized to the window.
func newGame(cfg field.Config, stepper field.Stepper, rng *rand.Rand) *Game {
	in := field.NewInput()
	sim := field.New(cfg, field.WithInput(in), field.WithStepper(stepper), field.WithRand(rng))
	g := &Game{
		sim:           sim,
		input:         in,
		pointer:       field.NewPointerTracker(in),
		gate:          frameclock.NewGate(nil),
		frame:         &diskList{},
		width:         windowWidth,
		height:        windowHeight,
		autoPilotRand: rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
	}
	g.sim.Initialize(cfg.Count, windowWidth, windowHeight)
	g.gate.Enable()
	return g
}

// Update gathers input and, while the window is visible, advances the field.
func (g *Game) Update() error {
	g.refreshVisibility()
	if g.autoPilot {
		if time.Now().After(g.autoPilotDeadline) {
			g.autoPilot = false
			if *recordDefaultPGO {
				return ebiten.Termination
			}
		} else {
			g.autoPilotStep()
		}
	} else {
		g.pollPointer()
	}

	if !g.gate.Visible() {
		return nil
	}
	start := time.Now()
	prevErr := g.sim.Err()
	g.sim.Tick(g.frame)
	if err := g.sim.Err(); err != nil && err != prevErr {
		log.Printf("Falling back to CPU stepper: %v", err)
	}
	g.lastSimDuration = time.Since(start)
	return nil
}

// Layout follows the window size and forwards changes to the field.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.input.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}

// Close releases the field's stepper.
func (g *Game) Close() {
	g.sim.Close()
}
