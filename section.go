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

import "github.com/ctessum/geom"

// Boundary marks the start of a named section of a reference line.
type Boundary struct {
	Start float64
	Name  string
}

// Section is a named part of a reference line.
type Section struct {
	Name       string
	Start, End float64
	Geom       geom.LineString
}

// ValidateBoundaries checks that b holds at least one boundary, that
// the boundaries are strictly increasing, and that the last boundary
// starts before length, so that every section has a positive length.
func ValidateBoundaries(b []Boundary, length float64) error {
	if len(b) == 0 {
		return ErrNoBoundaries
	}
	for i := 1; i < len(b); i++ {
		if !(b[i].Start > b[i-1].Start) {
			return &BoundaryOrderError{Index: i, Start: b[i].Start, Limit: b[i-1].Start}
		}
	}
	last := len(b) - 1
	if !(b[last].Start < length) {
		return &BoundaryOrderError{Index: last, Start: b[last].Start, Limit: length, PastEnd: true}
	}
	return nil
}

// Sections splits r into the sections described by b. Each section
// ends where the next one starts; the last one ends at the end of r.
func (r *ReferenceLine) Sections(b []Boundary) ([]Section, error) {
	if err := ValidateBoundaries(b, r.Length()); err != nil {
		return nil, err
	}
	o := make([]Section, len(b))
	for i, bb := range b {
		end := r.Length()
		if i < len(b)-1 {
			end = b[i+1].Start
		}
		l, err := r.Slice(bb.Start, end)
		if err != nil {
			return nil, err
		}
		o[i] = Section{Name: bb.Name, Start: bb.Start, End: end, Geom: l}
	}
	return o, nil
}

// Slice returns the part of r between chainages start and end: the
// interpolated point at start, the vertices strictly between start and
// end, and the interpolated point at end.
func (r *ReferenceLine) Slice(start, end float64) (geom.LineString, error) {
	ps, err := r.PointAt(start)
	if err != nil {
		return nil, err
	}
	pe, err := r.PointAt(end)
	if err != nil {
		return nil, err
	}
	o := geom.LineString{ps}
	for _, p := range r.points {
		if p.Chainage > start && p.Chainage < end {
			o = append(o, p.Point())
		}
	}
	return append(o, pe), nil
}
