// Package colour provides dominant colour extraction from pixel buffers.
package colour

// Luminance weights for the perceptual distance.
const (
	redWeight   = 0.30
	greenWeight = 0.59
	blueWeight  = 0.11
)

// DistanceSquared returns the perceptually weighted squared distance between
// two colours: (0.30*dr)^2 + (0.59*dg)^2 + (0.11*db)^2.
func DistanceSquared(c1, c2 Code) float64 {
	r1, g1, b1 := Unpack(c1)
	r2, g2, b2 := Unpack(c2)

	dr := float64(r1-r2) * redWeight
	dg := float64(g1-g2) * greenWeight
	db := float64(b1-b2) * blueWeight

	return dr*dr + dg*dg + db*db
}

