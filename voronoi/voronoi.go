package voronoi

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/kmeansvis/model"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Tolerance is the distance under which two sites count as coincident.
const Tolerance = 1e-9

var (
	// ErrNoSites is returned when partitioning an empty site set.
	ErrNoSites = errors.New("voronoi: at least one site is required")

	// ErrDegenerateGeometry is returned for sites with non-finite coordinates.
	ErrDegenerateGeometry = errors.New("voronoi: degenerate geometry")
)

// Cell is the region of the box nearest to one site.
type Cell struct {
	// ID is the centroid ID of the site.
	ID int
	// Site is the centroid position.
	Site orb.Point
	// Ring is the closed cell boundary, counter-clockwise with y up.
	// It is empty for degenerate cells.
	Ring orb.Ring
	// Degenerate marks a cell that covers no area, either because its site
	// coincides with an earlier one or lies outside the box.
	Degenerate bool
}

// Polygon returns the cell as an orb.Polygon.
func (c Cell) Polygon() orb.Polygon {
	if len(c.Ring) == 0 {
		return orb.Polygon{}
	}
	return orb.Polygon{c.Ring}
}

// Area returns the cell area.
func (c Cell) Area() float64 {
	if c.Degenerate {
		return 0
	}
	return planar.Area(c.Polygon())
}

// Bound converts presentation bounds to an orb.Bound.
func Bound(b model.Bounds) orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{b.Width, b.Height}}
}

// Partition computes one cell per centroid, clipped to bounds.
// Cells are returned in the order of centroids. Among coincident centroids
// the first keeps the cell.
func Partition(centroids []model.Centroid, bounds model.Bounds) ([]Cell, error) {
	if len(centroids) == 0 {
		return nil, ErrNoSites
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	for _, c := range centroids {
		if !finite(c.X) || !finite(c.Y) {
			return nil, fmt.Errorf("%w: centroid %d at (%v, %v)", ErrDegenerateGeometry, c.ID, c.X, c.Y)
		}
	}

	box := Bound(bounds)
	cells := make([]Cell, len(centroids))

	for i, ci := range centroids {
		site := orb.Point{ci.X, ci.Y}
		cells[i] = Cell{ID: ci.ID, Site: site}

		poly := []orb.Point{
			{box.Min[0], box.Min[1]},
			{box.Max[0], box.Min[1]},
			{box.Max[0], box.Max[1]},
			{box.Min[0], box.Max[1]},
		}

		merged := false
		for j, cj := range centroids {
			if i == j {
				continue
			}
			other := orb.Point{cj.X, cj.Y}
			if planar.DistanceSquared(site, other) <= Tolerance*Tolerance {
				if j < i {
					merged = true
					break
				}
				continue
			}

			poly = clip(poly, site, other)
			if len(poly) < 3 {
				break
			}
		}

		if !merged {
			poly = dedupe(poly)
		}
		if merged || len(poly) < 3 {
			cells[i].Degenerate = true
			continue
		}

		ring := make(orb.Ring, 0, len(poly)+1)
		ring = append(ring, poly...)
		ring = append(ring, poly[0])
		cells[i].Ring = ring
	}

	return cells, nil
}

// clip keeps the part of the convex polygon that is at least as close to
// site as to other (Sutherland-Hodgman against the bisector).
func clip(poly []orb.Point, site, other orb.Point) []orb.Point {
	// Inside: a*x + b*y <= c
	a := other[0] - site[0]
	b := other[1] - site[1]
	c := (other[0]*other[0] + other[1]*other[1] - site[0]*site[0] - site[1]*site[1]) / 2

	side := func(p orb.Point) float64 {
		return a*p[0] + b*p[1] - c
	}

	out := make([]orb.Point, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		sc, sp := side(cur), side(prev)

		switch {
		case sc <= 0:
			if sp > 0 {
				out = append(out, intersect(prev, cur, sp, sc))
			}
			out = append(out, cur)
		case sp <= 0:
			out = append(out, intersect(prev, cur, sp, sc))
		}
	}

	return out
}

// dedupe drops consecutive repeated vertices, which appear when a bisector
// passes exactly through a corner.
func dedupe(poly []orb.Point) []orb.Point {
	out := poly[:0]
	for _, p := range poly {
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func intersect(p, q orb.Point, sp, sq float64) orb.Point {
	t := sp / (sp - sq)
	return orb.Point{p[0] + t*(q[0]-p[0]), p[1] + t*(q[1]-p[1])}
}

// Locate returns the ID of the first non-degenerate cell containing p.
// Points on a shared border belong to the earlier cell.
func Locate(cells []Cell, p orb.Point) (int, bool) {
	for _, c := range cells {
		if c.Degenerate {
			continue
		}
		if planar.RingContains(c.Ring, p) {
			return c.ID, true
		}
	}
	return 0, false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
