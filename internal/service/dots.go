package service

import (
	"math"
	"math/rand/v2"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

const (
	dotEdgePad     = 5.0
	dotMaxAttempts = 100

	// Minimum center distance between dots, in percent of the card edge.
	// Equation cards pack more dots so they tolerate a tighter spacing.
	DotSpacingCard = 4.0
	DotSpacingMath = 3.0
)

// GenerateDotPositions scatters count dots over the unit card without
// visible clumping. Placement is rejection sampling against the minimum
// spacing; after dotMaxAttempts failed draws a dot is accepted anyway so
// dense cards always terminate.
func GenerateDotPositions(rng *rand.Rand, count int, minDist float64) []domain.Point {
	points := make([]domain.Point, 0, count)
	for len(points) < count {
		var candidate domain.Point
		for attempt := 0; attempt < dotMaxAttempts; attempt++ {
			candidate = domain.Point{
				X: dotEdgePad + rng.Float64()*(100-2*dotEdgePad),
				Y: dotEdgePad + rng.Float64()*(100-2*dotEdgePad),
			}
			if !tooClose(points, candidate, minDist) {
				break
			}
		}
		points = append(points, candidate)
	}
	return points
}

func tooClose(points []domain.Point, p domain.Point, minDist float64) bool {
	for _, q := range points {
		dx := p.X - q.X
		dy := p.Y - q.Y
		if math.Sqrt(dx*dx+dy*dy) < minDist {
			return true
		}
	}
	return false
}
