// Package termview renders a particle field into a terminal and turns
// terminal mouse, resize and focus events into field input.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Default cell size in viewport units. Terminal cells are roughly twice as
// tall as they are wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// maxDiskCells bounds how many cells a single disk may span horizontally.
const maxDiskCells = 3

// ramp orders glyphs from faint to bright.
var ramp = []rune(".:+*o@")

var (
	coreColor = [3]float64{0xf5, 0xef, 0xe0}
	glowColor = [3]float64{255, 220, 150}
)

// Surface draws glowing disks as shaded glyphs on a tcell screen. Viewport
// units map to cells through the cell size.
type Surface struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64

	cols, rows int
	level      []float64
}

// NewSurface wraps screen. Non-positive cell sizes use the defaults.
func NewSurface(screen tcell.Screen, cellW, cellH float64) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Surface{screen: screen, cellW: cellW, cellH: cellH}
}

// Viewport returns the screen size in viewport units.
func (s *Surface) Viewport() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.cellW, float64(rows) * s.cellH
}

// ToViewport maps a cell to the viewport coordinate of its centre.
func (s *Surface) ToViewport(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// Clear blanks the screen and resets the per-cell brightness.
func (s *Surface) Clear() {
	s.screen.Clear()
	s.cols, s.rows = s.screen.Size()
	if n := s.cols * s.rows; cap(s.level) < n {
		s.level = make([]float64, n)
	} else {
		s.level = s.level[:n]
		clear(s.level)
	}
}

// FillDisk shades every cell whose centre lies inside the disk, keeping
// the brightest contribution per cell. The centre cell is always shaded.
func (s *Surface) FillDisk(x, y, radius, alpha float64) {
	if alpha <= 0 || s.cols == 0 || s.rows == 0 {
		return
	}
	alpha = math.Min(alpha, 1)
	radius = math.Min(radius, maxDiskCells*s.cellW)
	cc := int(math.Floor(x / s.cellW))
	cr := int(math.Floor(y / s.cellH))

	c0 := int(math.Floor((x - radius) / s.cellW))
	c1 := int(math.Floor((x + radius) / s.cellW))
	r0 := int(math.Floor((y - radius) / s.cellH))
	r1 := int(math.Floor((y + radius) / s.cellH))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
				continue
			}
			cx, cy := s.ToViewport(col, row)
			d := math.Hypot(cx-x, cy-y)
			centre := col == cc && row == cr
			if !centre && d > radius {
				continue
			}
			level := alpha
			if !centre && radius > 0 {
				level *= 1 - d/(radius*1.5)
			}
			s.plot(col, row, level, !centre)
		}
	}
}

// Show flushes the frame to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

func (s *Surface) plot(col, row int, level float64, halo bool) {
	idx := row*s.cols + col
	if level <= s.level[idx] {
		return
	}
	s.level[idx] = level
	g := int(level * float64(len(ramp)-1))
	if g >= len(ramp) {
		g = len(ramp) - 1
	}
	tint := coreColor
	if halo {
		tint = glowColor
	}
	style := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.NewRGBColor(shade(tint[0], level), shade(tint[1], level), shade(tint[2], level)))
	s.screen.SetContent(col, row, ramp[g], nil, style)
}

func shade(c, level float64) int32 {
	// Keep faint particles readable on a dark terminal.
	v := c * (0.35 + 0.65*level)
	if v > 255 {
		v = 255
	}
	return int32(v)
}
