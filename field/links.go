package field

import (
	"math"
	"sort"
)

// Link geometry.
const (
	MaxLinkDist    = 140.0
	MinLinkWidth   = 0.4
	LinkWidthScale = 1.2

	maxLinkDist2 = MaxLinkDist * MaxLinkDist
)

// Broadphase selects how candidate pairs are enumerated for the link pass.
type Broadphase int

const (
	// BroadphasePairwise checks every unordered pair.
	BroadphasePairwise Broadphase = iota
	// BroadphaseGrid buckets particles into MaxLinkDist cells and only checks
	// neighbouring buckets. It yields the same links in the same order.
	BroadphaseGrid
)

// ParseBroadphase maps a config name to a Broadphase. Unknown names fall back to pairwise.
func ParseBroadphase(name string) Broadphase {
	if name == "grid" {
		return BroadphaseGrid
	}
	return BroadphasePairwise
}

func (b Broadphase) String() string {
	if b == BroadphaseGrid {
		return "grid"
	}
	return "pairwise"
}

// linkStrength returns 1 - dist/MaxLinkDist for pairs closer than MaxLinkDist.
// The square root is only taken once the squared distance passes the threshold.
func linkStrength(a, b *Particle) (float64, bool) {
	dx := a.X - b.X
	dy := a.Y - b.Y
	d2 := dx*dx + dy*dy
	if d2 >= maxLinkDist2 {
		return 0, false
	}
	return 1 - math.Sqrt(d2)/MaxLinkDist, true
}

// LinkWidth returns the stroke width for a link of strength t.
func LinkWidth(t float64) float64 {
	return math.Max(MinLinkWidth, t*LinkWidthScale)
}

func linkPaint(a, b *Particle, t, opacity float64) Paint {
	return Paint{
		Hue:        (a.Hue + b.Hue) / 2,
		Saturation: Saturation,
		Lightness:  Lightness,
		Alpha:      opacity * t,
	}
}

// linkFinder enumerates linked pairs (i < j) in ascending (i, j) order.
type linkFinder interface {
	reset(w, h float64)
	each(particles []Particle, fn func(i, j int, t float64))
}

type pairwise struct{}

func (pairwise) reset(float64, float64) {}

func (pairwise) each(particles []Particle, fn func(i, j int, t float64)) {
	for i := 0; i < len(particles); i++ {
		a := &particles[i]
		for j := i + 1; j < len(particles); j++ {
			if t, ok := linkStrength(a, &particles[j]); ok {
				fn(i, j, t)
			}
		}
	}
}

// linkGrid is a uniform bucket grid covering the surface plus the wrap margin.
type linkGrid struct {
	cols, rows int
	cells      [][]int
	cellOf     []int
	candidates []int
}

func newLinkGrid() *linkGrid {
	return &linkGrid{}
}

func (g *linkGrid) reset(w, h float64) {
	g.cols = int((w+2*WrapMargin)/MaxLinkDist) + 1
	g.rows = int((h+2*WrapMargin)/MaxLinkDist) + 1
	g.cells = make([][]int, g.cols*g.rows)
	for i := range g.cells {
		g.cells[i] = make([]int, 0, 8)
	}
}

func (g *linkGrid) cell(x, y float64) (col, row int) {
	col = int((x + WrapMargin) / MaxLinkDist)
	row = int((y + WrapMargin) / MaxLinkDist)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

func (g *linkGrid) each(particles []Particle, fn func(i, j int, t float64)) {
	if len(g.cells) == 0 {
		return
	}
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	if cap(g.cellOf) < len(particles) {
		g.cellOf = make([]int, len(particles))
	}
	g.cellOf = g.cellOf[:len(particles)]
	for i := range particles {
		col, row := g.cell(particles[i].X, particles[i].Y)
		idx := row*g.cols + col
		g.cellOf[i] = idx
		g.cells[idx] = append(g.cells[idx], i)
	}

	for i := range particles {
		a := &particles[i]
		col := g.cellOf[i] % g.cols
		row := g.cellOf[i] / g.cols

		g.candidates = g.candidates[:0]
		for dr := -1; dr <= 1; dr++ {
			r := row + dr
			if r < 0 || r >= g.rows {
				continue
			}
			for dc := -1; dc <= 1; dc++ {
				c := col + dc
				if c < 0 || c >= g.cols {
					continue
				}
				for _, j := range g.cells[r*g.cols+c] {
					if j > i {
						g.candidates = append(g.candidates, j)
					}
				}
			}
		}
		sort.Ints(g.candidates)

		for _, j := range g.candidates {
			if t, ok := linkStrength(a, &particles[j]); ok {
				fn(i, j, t)
			}
		}
	}
}

func newLinkFinder(b Broadphase) linkFinder {
	if b == BroadphaseGrid {
		return newLinkGrid()
	}
	return pairwise{}
}

// ForEachLink calls fn for every pair closer than MaxLinkDist, in ascending
// (i, j) order, using the given broad phase over a w x h surface.
func ForEachLink(particles []Particle, b Broadphase, w, h float64, fn func(i, j int, t float64)) {
	f := newLinkFinder(b)
	f.reset(w, h)
	f.each(particles, fn)
}
