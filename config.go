package main

import (
	"image/color"
	"time"
)

// Window, timing and styling constants for the ebiten front-end.
const (
	windowWidth       = 1280
	windowHeight      = 720
	defaultTPS        = 60
	pgoRecordDuration = 15 * time.Second

	glowSpread     = 4
	glowStrength   = 0.35
	autoPilotSpeed = 6
	autoBurstEvery = 90
)

var (
	backgroundColor = color.RGBA{0x0b, 0x0a, 0x0f, 0xff}
	particleColor   = color.RGBA{0xf5, 0xef, 0xe0, 0xff}
	glowColor       = color.RGBA{255, 220, 150, 0xff}
)
