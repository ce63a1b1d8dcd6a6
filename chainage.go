/*
Copyright © 2024 the riskeer authors.
This file is part of riskeer.

riskeer is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

riskeer is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with riskeer.  If not, see <http://www.gnu.org/licenses/>.
*/

package riskeer

import (
	"math"

	"github.com/ctessum/geom"
)

// ChainagePoint is a vertex of a reference line annotated with its
// distance along the line from the first vertex.
type ChainagePoint struct {
	Chainage float64
	X, Y     float64
}

// Point returns the location of p.
func (p ChainagePoint) Point() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// ReferenceLine is a polyline annotated with chainage. It is
// immutable after it is created.
type ReferenceLine struct {
	points []ChainagePoint
}

// NewReferenceLine creates a ReferenceLine from the vertices in l.
// Consecutive vertices at the same location are merged, so that the
// chainage of the returned line is strictly increasing.
func NewReferenceLine(l geom.LineString) (*ReferenceLine, error) {
	r := &ReferenceLine{points: make([]ChainagePoint, 0, len(l))}
	for i, p := range l {
		if i == 0 {
			r.points = append(r.points, ChainagePoint{X: p.X, Y: p.Y})
			continue
		}
		prev := r.points[len(r.points)-1]
		d := math.Hypot(p.X-prev.X, p.Y-prev.Y)
		if d == 0 {
			continue
		}
		r.points = append(r.points, ChainagePoint{Chainage: prev.Chainage + d, X: p.X, Y: p.Y})
	}
	if len(r.points) < 2 {
		return nil, &InsufficientPointsError{N: len(r.points)}
	}
	return r, nil
}

// ReferenceLineFromGeom creates a ReferenceLine from a generic geometry.
// Only line strings and multi-line strings with a single part are
// supported.
func ReferenceLineFromGeom(g geom.Geom) (*ReferenceLine, error) {
	switch t := g.(type) {
	case geom.LineString:
		return NewReferenceLine(t)
	case geom.MultiLineString:
		if len(t) != 1 {
			return nil, &UnsupportedGeometryError{Type: "MultiLineString"}
		}
		return NewReferenceLine(t[0])
	default:
		return nil, &UnsupportedGeometryError{Type: geomTypeName(g)}
	}
}

// Points returns a copy of the vertices of r.
func (r *ReferenceLine) Points() []ChainagePoint {
	o := make([]ChainagePoint, len(r.points))
	copy(o, r.points)
	return o
}

// Len returns the number of vertices in r.
func (r *ReferenceLine) Len() int { return len(r.points) }

// Length returns the chainage of the last vertex of r.
func (r *ReferenceLine) Length() float64 {
	return r.points[len(r.points)-1].Chainage
}

// LineString returns the vertices of r as a geometry.
func (r *ReferenceLine) LineString() geom.LineString {
	o := make(geom.LineString, len(r.points))
	for i, p := range r.points {
		o[i] = p.Point()
	}
	return o
}

// interval returns the index i of the first segment
// [points[i-1], points[i]] that contains chainage c.
func (r *ReferenceLine) interval(c float64) (int, error) {
	for i := 1; i < len(r.points); i++ {
		if c >= r.points[i-1].Chainage && c <= r.points[i].Chainage {
			return i, nil
		}
	}
	return 0, &ChainageOutOfRangeError{Chainage: c, Min: r.points[0].Chainage, Max: r.Length()}
}

// PointAt returns the location on r at chainage c.
func (r *ReferenceLine) PointAt(c float64) (geom.Point, error) {
	i, err := r.interval(c)
	if err != nil {
		return geom.Point{}, err
	}
	return r.interpolate(i, c), nil
}

// PointAndAngleAt returns the location on r at chainage c together
// with the direction, in radians, pointing from the end of the
// segment that contains c back to its start. A chainage at a vertex
// belongs to the segment ending at that vertex.
func (r *ReferenceLine) PointAndAngleAt(c float64) (geom.Point, float64, error) {
	i, err := r.interval(c)
	if err != nil {
		return geom.Point{}, 0, err
	}
	p1, p2 := r.points[i-1], r.points[i]
	return r.interpolate(i, c), math.Atan2(p1.Y-p2.Y, p1.X-p2.X), nil
}

// interpolate evaluates segment i at chainage c. The weighted form
// returns the vertices exactly at both ends of the segment.
func (r *ReferenceLine) interpolate(i int, c float64) geom.Point {
	p1, p2 := r.points[i-1], r.points[i]
	t := (c - p1.Chainage) / (p2.Chainage - p1.Chainage)
	return geom.Point{
		X: p1.X*(1-t) + p2.X*t,
		Y: p1.Y*(1-t) + p2.Y*t,
	}
}
