package main

import "github.com/hajimehoshi/ebiten/v2"

// refreshVisibility maps window state onto the frame gate. A minimised
// window is hidden; an unfocused one is hidden only with -pause-unfocused.
func (g *Game) refreshVisibility() {
	visible := !ebiten.IsWindowMinimized()
	if visible && *pauseUnfocusedFlag {
		visible = ebiten.IsFocused()
	}
	g.gate.SetHostVisible(visible)
}
