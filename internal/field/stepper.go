package field

// Stepper advances the depth and boost of a whole particle slice in one
// batch. Respawning is left to the caller so every implementation shares
// the same spawn rules.
type Stepper interface {
	Advance(ps []Particle, mult, decay float64) error
	Name() string
	Close()
}

// cpuStepper runs the advance on the calling goroutine.
type cpuStepper struct{}

// NewCPUStepper returns the default in-process stepper.
func NewCPUStepper() Stepper { return cpuStepper{} }

func (cpuStepper) Advance(ps []Particle, mult, decay float64) error {
	for i := range ps {
		ps[i].advanceDepth(mult, decay)
	}
	return nil
}

func (cpuStepper) Name() string { return "cpu" }

func (cpuStepper) Close() {}
