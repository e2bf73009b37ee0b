package field

// PointerSample is one frame of polled pointer state from a host that
// reports positions rather than events.
type PointerSample struct {
	// TouchStarts are the positions of touches that began this frame.
	TouchStarts []Point
	// Touches are the positions of touches still held, primary first.
	Touches []Point
	// TouchReleased is set when the last touch lifted this frame.
	TouchReleased bool

	CursorX, CursorY int
	Width, Height    int
	Focused          bool

	ButtonHeld     bool
	ButtonReleased bool
}

// PointerTracker turns polled samples into Input events. The cursor only
// moves the pointer when it actually moves or a button changes, so a host
// whose cursor never updates (touch screens) does not bring the pointer
// back after a touch ends.
type PointerTracker struct {
	in *Input

	lastX, lastY int
	seen         bool
	held         bool
}

// NewPointerTracker returns a tracker writing into in.
func NewPointerTracker(in *Input) *PointerTracker {
	return &PointerTracker{in: in}
}

// Update applies one frame of samples.
func (t *PointerTracker) Update(s PointerSample) {
	for _, p := range s.TouchStarts {
		t.in.TouchStart(p.X, p.Y)
	}
	if len(s.Touches) > 0 {
		t.in.MovePointer(s.Touches[0].X, s.Touches[0].Y)
		return
	}
	if s.TouchReleased {
		t.in.TouchEnd()
		t.held = false
		return
	}

	moved := t.seen && (s.CursorX != t.lastX || s.CursorY != t.lastY)
	t.lastX, t.lastY, t.seen = s.CursorX, s.CursorY, true

	if !s.Focused {
		t.in.ClearPointer()
		if t.held {
			t.in.SetPressed(false)
			t.held = false
		}
		return
	}

	inside := s.CursorX >= 0 && s.CursorY >= 0 && s.CursorX < s.Width && s.CursorY < s.Height
	if moved || s.ButtonHeld != t.held || s.ButtonReleased {
		if inside {
			t.in.MovePointer(float64(s.CursorX), float64(s.CursorY))
		} else {
			t.in.ClearPointer()
		}
	}
	if s.ButtonHeld != t.held {
		t.in.SetPressed(s.ButtonHeld)
		t.held = s.ButtonHeld
	}
	if s.ButtonReleased && inside {
		t.in.TriggerBurst(float64(s.CursorX), float64(s.CursorY))
	}
}
