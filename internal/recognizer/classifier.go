package recognizer

import (
	"math"

	"github.com/aretw0/gestures/pkg/domain"
)

// Displaced reports whether the motion from prev to cur reaches the deadzone
// on either axis. Samples that do not are never classified.
func Displaced(prev, cur domain.Point, deadzone int) bool {
	dx, dy := prev.Delta(cur)
	return max(iabs(dx), iabs(dy)) >= deadzone
}

// Classify returns the direction of the motion from prev to cur, or
// DirectionNone when the points coincide.
//
// With diagonals off the dominant axis wins and ties go to the vertical axis.
// With diagonals on the angle picks one of eight 45 degree sectors centered
// on the compass points.
func Classify(prev, cur domain.Point, diagonals bool) domain.Direction {
	dx, dy := prev.Delta(cur)
	if dx == 0 && dy == 0 {
		return domain.DirectionNone
	}
	if diagonals {
		deg := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
		return DirectionForAngle(deg)
	}
	if iabs(dx) > iabs(dy) {
		if dx > 0 {
			return domain.Right
		}
		return domain.Left
	}
	if dy > 0 {
		return domain.Up
	}
	return domain.Down
}

var sectors = []struct {
	lower, upper float64
	dir          domain.Direction
}{
	{22.5, 67.5, domain.UpRight},
	{67.5, 112.5, domain.Up},
	{112.5, 157.5, domain.UpLeft},
	{157.5, 202.5, domain.Left},
	{202.5, 247.5, domain.DownLeft},
	{247.5, 292.5, domain.Down},
	{292.5, 337.5, domain.DownRight},
}

// DirectionForAngle maps an angle in degrees (counter-clockwise from due
// right, any range) to its 8-way sector. Lower bounds are inclusive.
func DirectionForAngle(deg float64) domain.Direction {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	for _, s := range sectors {
		if deg >= s.lower && deg < s.upper {
			return s.dir
		}
	}
	return domain.Right
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
