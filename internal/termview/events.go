package termview

import (
	"github.com/gdamore/tcell/v2"

	"starfield/internal/field"
	"starfield/internal/frameclock"
)

// Events translates tcell events into field input. A mouse press followed
// by a release is a click and triggers a burst.
type Events struct {
	screen  tcell.Screen
	surface *Surface
	input   *field.Input
	gate    *frameclock.Gate

	pressed bool
}

// NewEvents wires a screen to an input and an optional visibility gate.
func NewEvents(screen tcell.Screen, surface *Surface, input *field.Input, gate *frameclock.Gate) *Events {
	return &Events{screen: screen, surface: surface, input: input, gate: gate}
}

// Run polls the screen until it is finalised or a quit key arrives.
func (e *Events) Run() {
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}
		if e.Handle(ev) {
			return
		}
	}
}

// Handle applies one event and reports whether the user asked to quit.
func (e *Events) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return true
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := e.surface.ToViewport(col, row)
		e.input.MovePointer(x, y)
		down := ev.Buttons()&tcell.Button1 != 0
		if down != e.pressed {
			e.input.SetPressed(down)
			if !down {
				e.input.TriggerBurst(x, y)
			}
			e.pressed = down
		}
	case *tcell.EventResize:
		e.screen.Sync()
		w, h := e.surface.Viewport()
		e.input.Resize(w, h)
	case *tcell.EventFocus:
		if !ev.Focused {
			e.input.ClearPointer()
			e.input.SetPressed(false)
			e.pressed = false
		}
		if e.gate != nil {
			e.gate.SetHostVisible(ev.Focused)
		}
	}
	return false
}
