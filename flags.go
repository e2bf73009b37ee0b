package main

import (
	"flag"

	"starfield/internal/field"
)

// Command-line flags controlling the field, the front-end and profiling.
var (
	// countFlag sets the target population of the field.
	countFlag = flag.Int("count", 160, "number of particles in the field")

	fovFlag      = flag.Float64("fov", 400, "projection field of view constant")
	maxDepthFlag = flag.Float64("max-depth", 600, "depth range of far spawns")
	speedFlag    = flag.Float64("speed", 0.9, "global speed multiplier")

	// pointerRadiusFlag is the reach of the pointer repulsion in pixels.
	pointerRadiusFlag = flag.Float64("pointer-radius", 120, "pointer repulsion radius in pixels")

	burstCountFlag = flag.Int("burst-count", 20, "particles spawned per click or tap")
	burstFlag      = flag.Bool("burst", true, "spawn a burst of particles on click or tap")
	boostFlag      = flag.Bool("boost", false, "kick the field forward when a burst fires")
	repelFlag      = flag.Bool("repel", true, "push particles away from the pointer")

	// suppressWhilePressingFlag reserves press-and-hold for bursts.
	suppressWhilePressingFlag = flag.Bool("suppress-while-pressing", true, "disable pointer repulsion while a button or touch is held")

	// terminalFlag renders into the terminal instead of opening a window.
	terminalFlag   = flag.Bool("terminal", false, "render into the terminal with tcell")
	cellWidthFlag  = flag.Float64("cell-width", 8, "terminal cell width in viewport units")
	cellHeightFlag = flag.Float64("cell-height", 16, "terminal cell height in viewport units")
	fpsFlag        = flag.Int("fps", defaultTPS, "frame rate of the terminal renderer")

	// openCLFlag moves the depth advance onto an OpenCL device when the
	// binary was built with -tags opencl.
	openCLFlag = flag.Bool("opencl", false, "advance particles on an OpenCL device (requires -tags opencl)")

	pauseUnfocusedFlag = flag.Bool("pause-unfocused", false, "stop animating while the window is unfocused")

	// autoPilotFlag drives the pointer with a scripted wander.
	autoPilotFlag = flag.Bool("autopilot", false, "move the pointer automatically and fire periodic bursts")

	// recordDefaultPGO triggers a scripted run to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "run the autopilot for 15s while capturing default.pgo")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	seedFlag = flag.Int64("seed", 0, "random seed for the field (0 uses the clock)")

	// debugFlag enables the FPS and field statistics overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and field statistics overlay")
)

// fieldConfig builds the simulator configuration from the flags.
func fieldConfig() field.Config {
	cfg := field.DefaultConfig()
	cfg.Count = *countFlag
	cfg.FOV = *fovFlag
	cfg.MaxDepth = *maxDepthFlag
	cfg.SpeedMultiplier = *speedFlag
	cfg.PointerRadius = *pointerRadiusFlag
	cfg.BurstCount = *burstCountFlag
	cfg.Features = field.Features{
		Repel:                 *repelFlag,
		SuppressWhilePressing: *suppressWhilePressingFlag,
		Burst:                 *burstFlag,
		Boost:                 *boostFlag,
	}
	return cfg
}
