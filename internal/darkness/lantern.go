package darkness

import "math"

// Lantern is a lit safe-zone anchor. Occupants within the region's safe
// radius of any lantern are exempt from the darkness. The lantern's own
// charge-up and persistence are handled elsewhere; the engine only keeps the
// authoritative copy used for exemption queries.
type Lantern struct {
	ID     string
	Region string
	X, Y   float64
}

func (l *Lantern) distanceTo(x, y float64) float64 {
	return math.Hypot(l.X-x, l.Y-y)
}
