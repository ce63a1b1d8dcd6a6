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
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/gonum/floats"
)

func TestSections(t *testing.T) {
	r := newTestLine(t)
	s, err := r.Sections([]Boundary{{0, "a"}, {100, "b"}, {500, "c"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []Section{
		{Name: "a", Start: 0, End: 100, Geom: geom.LineString{{X: 1000, Y: 2000}, {X: 1100, Y: 2000}}},
		{Name: "b", Start: 100, End: 500, Geom: geom.LineString{{X: 1100, Y: 2000}, {X: 1300, Y: 2000}, {X: 1300, Y: 2200}}},
		{Name: "c", Start: 500, End: 1200, Geom: geom.LineString{{X: 1300, Y: 2200}, {X: 1300, Y: 2400}, {X: 1000, Y: 2000}}},
	}
	if len(s) != len(want) {
		t.Fatalf("have %d sections, want %d", len(s), len(want))
	}
	for i, w := range want {
		if s[i].Name != w.Name || s[i].Start != w.Start || s[i].End != w.End {
			t.Errorf("%d: have %s [%g, %g], want %s [%g, %g]", i, s[i].Name, s[i].Start, s[i].End, w.Name, w.Start, w.End)
		}
		if !similarLine(s[i].Geom, w.Geom, testTolerance) {
			t.Errorf("%s: have %v, want %v", w.Name, s[i].Geom, w.Geom)
		}
	}
}

// Vertices at a boundary are written once per section, as the
// interpolated end point of one and the start point of the next.
func TestSections_boundaryAtVertex(t *testing.T) {
	r := newTestLine(t)
	s, err := r.Sections([]Boundary{{0, "x"}, {300, "y"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.LineString{
		{{X: 1000, Y: 2000}, {X: 1300, Y: 2000}},
		{{X: 1300, Y: 2000}, {X: 1300, Y: 2400}, {X: 1000, Y: 2000}},
	}
	for i, w := range want {
		if !reflect.DeepEqual(s[i].Geom, w) {
			t.Errorf("%s: have %v, want %v", s[i].Name, s[i].Geom, w)
		}
	}
}

func TestSections_straight(t *testing.T) {
	r, err := NewReferenceLine(geom.LineString{{X: 0, Y: 0}, {X: 1500, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	s, err := r.Sections([]Boundary{{0, "a"}, {1000, "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if s[0].Start != 0 || s[0].End != 1000 || s[1].Start != 1000 || s[1].End != 1500 {
		t.Errorf("section ranges: %+v", s)
	}
	want := geom.LineString{{X: 1000, Y: 0}, {X: 1500, Y: 0}}
	if !similarLine(s[1].Geom, want, testTolerance) {
		t.Errorf("have %v, want %v", s[1].Geom, want)
	}
}

func TestSections_pointCount(t *testing.T) {
	// A zigzag line with vertices every ~141 m.
	var l geom.LineString
	for i := 0; i <= 60; i++ {
		l = append(l, geom.Point{X: float64(i) * 100, Y: float64(i%2) * 100})
	}
	r, err := NewReferenceLine(l)
	if err != nil {
		t.Fatal(err)
	}
	b := []Boundary{{0, "a"}, {1000, "b"}, {5000, "c"}}
	s, err := r.Sections(b)
	if err != nil {
		t.Fatal(err)
	}
	interior := 0
	for _, p := range r.Points() {
		for i, bb := range b {
			if p.Chainage > bb.Start && p.Chainage < s[i].End {
				interior++
			}
		}
	}
	n := 0
	for i, ss := range s {
		n += len(ss.Geom)
		start, err := r.PointAt(ss.Start)
		if err != nil {
			t.Fatal(err)
		}
		end, err := r.PointAt(ss.End)
		if err != nil {
			t.Fatal(err)
		}
		if ss.Geom[0] != start || ss.Geom[len(ss.Geom)-1] != end {
			t.Errorf("%d: end points %v, %v; want %v, %v", i, ss.Geom[0], ss.Geom[len(ss.Geom)-1], start, end)
		}
		if l := ss.Geom.Length(); !floats.EqualWithinAbs(l, ss.End-ss.Start, 1.e-6) {
			t.Errorf("%d: length %g, want %g", i, l, ss.End-ss.Start)
		}
	}
	if want := interior + 2*len(s); n != want {
		t.Errorf("have %d points, want %d", n, want)
	}
	if s[len(s)-1].End != r.Length() {
		t.Errorf("last section ends at %g, want %g", s[len(s)-1].End, r.Length())
	}
	if !floats.EqualWithinAbs(r.Length(), 60*100*math.Sqrt2, 1.e-6) {
		t.Errorf("length %g", r.Length())
	}
}

func TestValidateBoundaries(t *testing.T) {
	if err := ValidateBoundaries(nil, 100); err != ErrNoBoundaries {
		t.Errorf("empty: %v", err)
	}
	if err := ValidateBoundaries([]Boundary{{0, "a"}, {50, "b"}}, 100); err != nil {
		t.Errorf("valid: %v", err)
	}
	tests := []struct {
		b       []Boundary
		index   int
		pastEnd bool
	}{
		{b: []Boundary{{0, "a"}, {50, "b"}, {50, "c"}}, index: 2},
		{b: []Boundary{{0, "a"}, {60, "b"}, {50, "c"}}, index: 2},
		{b: []Boundary{{10, "a"}, {0, "b"}}, index: 1},
		{b: []Boundary{{0, "a"}, {100, "b"}}, index: 1, pastEnd: true},
		{b: []Boundary{{150, "a"}}, index: 0, pastEnd: true},
	}
	for _, test := range tests {
		err := ValidateBoundaries(test.b, 100)
		var e *BoundaryOrderError
		if !errors.As(err, &e) {
			t.Errorf("%v: want BoundaryOrderError, have %v", test.b, err)
			continue
		}
		if e.Index != test.index || e.PastEnd != test.pastEnd {
			t.Errorf("%v: have %+v", test.b, e)
		}
	}
}

func TestSections_startOutOfRange(t *testing.T) {
	r := newTestLine(t)
	_, err := r.Sections([]Boundary{{-10, "a"}, {100, "b"}})
	var e *ChainageOutOfRangeError
	if !errors.As(err, &e) {
		t.Errorf("want ChainageOutOfRangeError, have %v", err)
	}
}

func TestSlice(t *testing.T) {
	r := newTestLine(t)
	l, err := r.Slice(250, 750)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.LineString{{X: 1250, Y: 2000}, {X: 1300, Y: 2000}, {X: 1300, Y: 2400}, {X: 1270, Y: 2360}}
	if !similarLine(l, want, testTolerance) {
		t.Errorf("have %v, want %v", l, want)
	}
}
