// Package field implements the ambient particle field: a density-adaptive set of
// drifting points that are re-seeded on resize and linked to their neighbours.
package field

// Seeding ranges and per-frame constants.
const (
	// ReferenceArea is the surface area at which BaseCount particles are seeded.
	ReferenceArea = 1440 * 900
	// MinCount is the floor applied to the density-derived particle count.
	MinCount = 40

	MaxSpeed = 0.25
	MinSize  = 0.6
	MaxSize  = 1.8

	// Hues run blue (210) -> purple (265) -> pink (320).
	HueMin  = 210.0
	HueMax  = 320.0
	HueStep = 0.02

	// WrapMargin is how far a particle may leave the surface before it is
	// teleported to the opposite edge.
	WrapMargin = 20.0
)

// Particle is a single drifting point. Velocity and size are fixed at seeding;
// position and hue change every frame.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Hue    float64
}

// Rand is the random source used for seeding. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

func between(r Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// TargetCount returns the number of particles for a surface of the given area.
func TargetCount(area float64, baseCount int) int {
	if area < 0 {
		area = 0
	}
	n := int(area * float64(baseCount) / ReferenceArea)
	if n < MinCount {
		return MinCount
	}
	return n
}

// Seed creates count particles spread uniformly over a w x h surface.
func Seed(r Rand, count int, w, h float64) []Particle {
	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = Particle{
			X:    between(r, 0, w),
			Y:    between(r, 0, h),
			VX:   between(r, -MaxSpeed, MaxSpeed),
			VY:   between(r, -MaxSpeed, MaxSpeed),
			Size: between(r, MinSize, MaxSize),
			Hue:  between(r, HueMin, HueMax),
		}
	}
	return particles
}

// WrapCoord teleports v to the opposite edge once it leaves [-margin, limit+margin].
func WrapCoord(v, limit float64) float64 {
	if v < -WrapMargin {
		return limit + WrapMargin
	}
	if v > limit+WrapMargin {
		return -WrapMargin
	}
	return v
}

// DriftHue advances a hue by one frame, wrapping back to HueMin past HueMax.
func DriftHue(h float64) float64 {
	h += HueStep
	if h > HueMax {
		return HueMin
	}
	return h
}

// Step advances every particle by one frame on a w x h surface.
// Increments are per call, not scaled by elapsed time.
func Step(particles []Particle, w, h float64) {
	for i := range particles {
		p := &particles[i]
		p.X = WrapCoord(p.X+p.VX, w)
		p.Y = WrapCoord(p.Y+p.VY, h)
		p.Hue = DriftHue(p.Hue)
	}
}
