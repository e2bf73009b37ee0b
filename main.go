package main

import (
	"errors"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"starfield/internal/field"
)

func main() {
	flag.Parse()

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			log.Fatalf("CPU profile: %v", err)
		}
		defer stop()
	}

	cfg := fieldConfig()
	rng := newRand()
	stepper := selectStepper()

	if *terminalFlag {
		sim := field.New(cfg, field.WithStepper(stepper), field.WithRand(rng))
		defer sim.Close()
		if err := runTerminal(sim); err != nil {
			log.Fatalf("Terminal: %v", err)
		}
		if err := sim.Err(); err != nil {
			log.Printf("Fell back to CPU stepper: %v", err)
		}
		return
	}

	g := newGame(cfg, stepper, rng)
	defer g.Close()
	if *recordDefaultPGO {
		stop, err := startCPUProfile("default.pgo")
		if err != nil {
			log.Fatalf("PGO recording: %v", err)
		}
		defer stop()
		g.enableAutoPilot(pgoRecordDuration)
	} else if *autoPilotFlag {
		g.enableAutoPilot(24 * time.Hour)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Starfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Run: %v", err)
	}
}

// newRand seeds the field from -seed, or from the clock when it is zero.
func newRand() *rand.Rand {
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// selectStepper returns the OpenCL stepper when requested and available,
// otherwise the CPU stepper.
func selectStepper() field.Stepper {
	if !*openCLFlag {
		return field.NewCPUStepper()
	}
	st, err := field.NewOpenCLStepper()
	if err != nil {
		log.Printf("OpenCL unavailable, using CPU stepper: %v", err)
		return field.NewCPUStepper()
	}
	log.Printf("OpenCL stepper enabled (%s)", st.Name())
	return st
}
