package field

// Features toggles the optional behaviours of the simulator.
type Features struct {
	// Repel pushes particles away from the pointer.
	Repel bool
	// SuppressWhilePressing disables repulsion while the pointer is held down.
	SuppressWhilePressing bool
	// Burst enables click/tap spawns near the pointer.
	Burst bool
	// Boost kicks existing particles forward when a burst fires. Off by
	// default.
	Boost bool
}

// Config holds the tunables of a particle field. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	Count           int
	MaxDepth        float64
	FarBand         float64
	FOV             float64
	SpeedMultiplier float64

	PointerRadius float64
	PointerForce  float64

	BurstCount       int
	BurstDepthRatio  float64
	BurstJitter      float64
	BurstRadiusScale float64
	BurstBoost       float64
	BoostDecay       float64

	CullMargin float64

	Features Features
}

// DefaultConfig returns the interactive hero-field settings.
func DefaultConfig() Config {
	return Config{
		Count:            160,
		MaxDepth:         600,
		FarBand:          200,
		FOV:              400,
		SpeedMultiplier:  0.9,
		PointerRadius:    120,
		PointerForce:     18,
		BurstCount:       20,
		BurstDepthRatio:  0.20,
		BurstJitter:      40,
		BurstRadiusScale: 0.25,
		BurstBoost:       3,
		BoostDecay:       0.9,
		CullMargin:       100,
		Features: Features{
			Repel:                 true,
			SuppressWhilePressing: true,
			Burst:                 true,
		},
	}
}

// normalized fills non-positive values from the defaults so a partially
// populated config never divides by zero or spawns a dead particle.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Count < 0 {
		c.Count = 0
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	if c.FarBand <= 0 {
		c.FarBand = d.FarBand
	}
	if c.FOV <= 0 {
		c.FOV = d.FOV
	}
	if c.SpeedMultiplier <= 0 {
		c.SpeedMultiplier = d.SpeedMultiplier
	}
	if c.PointerRadius < 0 {
		c.PointerRadius = 0
	}
	if c.BurstCount < 0 {
		c.BurstCount = 0
	}
	if c.BurstDepthRatio <= 0 {
		c.BurstDepthRatio = d.BurstDepthRatio
	}
	if c.BurstRadiusScale <= 0 {
		c.BurstRadiusScale = d.BurstRadiusScale
	}
	if c.BurstBoost < 1 {
		c.BurstBoost = 1
	}
	if c.BoostDecay <= 0 || c.BoostDecay >= 1 {
		c.BoostDecay = d.BoostDecay
	}
	if c.CullMargin < 0 {
		c.CullMargin = 0
	}
	return c
}
