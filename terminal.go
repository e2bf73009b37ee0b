package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"starfield/internal/field"
	"starfield/internal/frameclock"
	"starfield/internal/termview"
)

// runTerminal renders the field into the current terminal until the user
// quits. The simulator only runs on the frame clock's goroutine; events
// reach it through the shared input.
func runTerminal(sim *field.Simulator) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	surface := termview.NewSurface(screen, *cellWidthFlag, *cellHeightFlag)
	w, h := surface.Viewport()
	sim.Initialize(sim.Config().Count, w, h)

	fps := *fpsFlag
	if fps <= 0 {
		fps = defaultTPS
	}
	clock := frameclock.New(time.Second/time.Duration(fps), func() {
		sim.Tick(surface)
		surface.Show()
	})
	gate := frameclock.NewGate(clock)
	gate.Enable()

	termview.NewEvents(screen, surface, sim.Input(), gate).Run()
	gate.Disable()
	screen.Fini()

	stats := sim.Stats()
	log.Printf("Rendered %d frames (%d respawns, %d bursts)", clock.Frames(), stats.Respawns, stats.Bursts)
	return nil
}
