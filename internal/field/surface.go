package field

// Surface is the raster target a frame is drawn onto. It is expected to
// match the viewport the simulator was last sized to.
type Surface interface {
	Clear()
	// FillDisk draws a soft glowing disk centred at (x, y).
	FillDisk(x, y, radius, alpha float64)
}

// discardSurface drops every draw call. Used when a frame has no target.
type discardSurface struct{}

func (discardSurface) Clear()                      {}
func (discardSurface) FillDisk(_, _, _, _ float64) {}
