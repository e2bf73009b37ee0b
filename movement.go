package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"starfield/internal/field"
)

// pollPointer samples mouse and touch state for the pointer tracker.
// Touches take priority over the mouse while any finger is down.
func (g *Game) pollPointer() {
	sample := field.PointerSample{
		Width:          g.width,
		Height:         g.height,
		Focused:        ebiten.IsFocused(),
		ButtonHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ButtonReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	g.touchStarts = appendTouchPoints(g.touchStarts[:0], g.touchIDs)
	sample.TouchStarts = g.touchStarts

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	g.touches = appendTouchPoints(g.touches[:0], g.touchIDs)
	sample.Touches = g.touches

	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	sample.TouchReleased = len(g.touchIDs) > 0 && len(sample.Touches) == 0

	sample.CursorX, sample.CursorY = ebiten.CursorPosition()
	g.pointer.Update(sample)
}

func appendTouchPoints(dst []field.Point, ids []ebiten.TouchID) []field.Point {
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, field.Point{X: float64(x), Y: float64(y)})
	}
	return dst
}

// enableAutoPilot drives the pointer with a scripted wander for a limited
// duration.
func (g *Game) enableAutoPilot(duration time.Duration) {
	g.autoPilot = true
	g.autoPilotDeadline = time.Now().Add(duration)
	if g.autoPilotRand == nil {
		g.autoPilotRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	g.autoX, g.autoY = float64(g.width)/2, float64(g.height)/2
	g.autoFrameCount = 0
	g.autoBurstTimer = 0
}

// autoPilotStep moves the scripted pointer, bouncing off the window edges,
// and clicks every autoBurstEvery frames.
func (g *Game) autoPilotStep() {
	if g.autoFrameCount <= 0 {
		g.randomizeAutoPilotDirection()
	}
	g.autoFrameCount--
	nextX := g.autoX + g.autoDirX*autoPilotSpeed
	nextY := g.autoY + g.autoDirY*autoPilotSpeed
	if nextX < 0 || nextX >= float64(g.width) {
		g.autoDirX = -g.autoDirX
		nextX = g.autoX
	}
	if nextY < 0 || nextY >= float64(g.height) {
		g.autoDirY = -g.autoDirY
		nextY = g.autoY
	}
	g.autoX, g.autoY = nextX, nextY
	g.input.MovePointer(g.autoX, g.autoY)

	g.autoBurstTimer++
	if g.autoBurstTimer >= autoBurstEvery {
		g.autoBurstTimer = 0
		g.input.TriggerBurst(g.autoX, g.autoY)
	}
}

// randomizeAutoPilotDirection chooses a new heading for the scripted pointer.
func (g *Game) randomizeAutoPilotDirection() {
	angle := g.autoPilotRand.Float64() * 2 * math.Pi
	g.autoDirX = math.Cos(angle)
	g.autoDirY = math.Sin(angle)
	g.autoFrameCount = 20 + g.autoPilotRand.Intn(50)
}
