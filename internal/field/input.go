package field

import "sync/atomic"

// burstQueueSize bounds the number of pending burst triggers between frames.
const burstQueueSize = 8

// Point is a viewport coordinate.
type Point struct {
	X, Y float64
}

// Input is the state shared between an event source and the frame cycle.
// Writers and the reader may live on different goroutines; every field is
// last value wins.
type Input struct {
	pointer atomic.Pointer[Point]
	pressed atomic.Bool
	resize  atomic.Pointer[Point]
	bursts  chan Point
}

// NewInput returns an Input with no pointer and nothing pressed.
func NewInput() *Input {
	return &Input{bursts: make(chan Point, burstQueueSize)}
}

// MovePointer records the latest pointer position.
func (in *Input) MovePointer(x, y float64) {
	in.pointer.Store(&Point{X: x, Y: y})
}

// ClearPointer marks the pointer as absent (mouse left, touch ended).
func (in *Input) ClearPointer() {
	in.pointer.Store(nil)
}

// Pointer returns the last known pointer position.
func (in *Input) Pointer() (Point, bool) {
	p := in.pointer.Load()
	if p == nil {
		return Point{}, false
	}
	return *p, true
}

// SetPressed records whether a button or touch is held.
func (in *Input) SetPressed(pressed bool) {
	in.pressed.Store(pressed)
}

// Pressed reports the last recorded press state.
func (in *Input) Pressed() bool {
	return in.pressed.Load()
}

// TriggerBurst queues a burst at the given coordinate. It never blocks; if
// the queue is full the trigger is dropped.
func (in *Input) TriggerBurst(x, y float64) bool {
	select {
	case in.bursts <- Point{X: x, Y: y}:
		return true
	default:
		return false
	}
}

// TouchStart is a press, a pointer move and a burst in one event.
func (in *Input) TouchStart(x, y float64) {
	in.SetPressed(true)
	in.MovePointer(x, y)
	in.TriggerBurst(x, y)
}

// TouchEnd releases the press and forgets the pointer.
func (in *Input) TouchEnd() {
	in.SetPressed(false)
	in.ClearPointer()
}

// Resize records a new viewport size for the next frame.
func (in *Input) Resize(width, height float64) {
	in.resize.Store(&Point{X: width, Y: height})
}

// takeResize returns and clears the pending viewport size.
func (in *Input) takeResize() (Point, bool) {
	p := in.resize.Swap(nil)
	if p == nil {
		return Point{}, false
	}
	return *p, true
}

// drainBursts calls fn for every queued trigger without waiting.
func (in *Input) drainBursts(fn func(Point)) {
	for {
		select {
		case p := <-in.bursts:
			fn(p)
		default:
			return
		}
	}
}
