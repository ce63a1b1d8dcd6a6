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

func similarLine(a, b geom.LineString, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !floats.EqualWithinAbs(a[i].X, b[i].X, tol) || !floats.EqualWithinAbs(a[i].Y, b[i].Y, tol) {
			return false
		}
	}
	return true
}

func TestCrossSectionAt(t *testing.T) {
	r, err := NewReferenceLine(geom.LineString{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	cs, err := r.CrossSectionAt(50, 20, 50)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.LineString{{X: 50, Y: 20}, {X: 50, Y: -50}}
	if !similarLine(cs.Geom, want, testTolerance) {
		t.Errorf("have %v, want %v", cs.Geom, want)
	}
	if cs.Label != "   50" {
		t.Errorf("label: have %q", cs.Label)
	}
}

func TestCrossSections(t *testing.T) {
	r := newTestLine(t)
	cs, err := r.CrossSections(CrossSectionConfig{
		Start:        0,
		End:          1200,
		Spacing:      300,
		OffsetRiver:  10,
		OffsetPolder: 30,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		label string
		geom  geom.LineString
	}{
		// Heading east; river side is to the north.
		{"    0", geom.LineString{{X: 1000, Y: 2010}, {X: 1000, Y: 1970}}},
		{"  300", geom.LineString{{X: 1300, Y: 2010}, {X: 1300, Y: 1970}}},
		// Heading north; river side is to the west.
		{"  600", geom.LineString{{X: 1290, Y: 2300}, {X: 1330, Y: 2300}}},
		// Heading south west.
		{"  900", geom.LineString{{X: 1180 + 8, Y: 2240 - 6}, {X: 1180 - 24, Y: 2240 + 18}}},
		{" 1200", geom.LineString{{X: 1000 + 8, Y: 2000 - 6}, {X: 1000 - 24, Y: 2000 + 18}}},
	}
	if len(cs) != len(want) {
		t.Fatalf("have %d cross sections, want %d", len(cs), len(want))
	}
	for i, w := range want {
		if cs[i].Label != w.label {
			t.Errorf("%d: label %q, want %q", i, cs[i].Label, w.label)
		}
		if !similarLine(cs[i].Geom, w.geom, 1.e-6) {
			t.Errorf("%d: geometry %v, want %v", i, cs[i].Geom, w.geom)
		}
	}
}

func TestCrossSections_perpendicular(t *testing.T) {
	r := newTestLine(t)
	cs, err := r.CrossSections(CrossSectionConfig{Start: 10, End: 1190, Spacing: 45, OffsetRiver: 20, OffsetPolder: 50})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cs {
		p, a, err := r.PointAndAngleAt(c.Chainage)
		if err != nil {
			t.Fatal(err)
		}
		dx, dy := c.Geom[1].X-c.Geom[0].X, c.Geom[1].Y-c.Geom[0].Y
		if dot := dx*math.Cos(a) + dy*math.Sin(a); !floats.EqualWithinAbs(dot, 0, 1.e-6) {
			t.Errorf("chainage %g: not perpendicular (%g)", c.Chainage, dot)
		}
		if l := math.Hypot(dx, dy); !floats.EqualWithinAbs(l, 70, 1.e-6) {
			t.Errorf("chainage %g: length %g, want 70", c.Chainage, l)
		}
		if d := math.Hypot(c.Geom[0].X-p.X, c.Geom[0].Y-p.Y); !floats.EqualWithinAbs(d, 20, 1.e-6) {
			t.Errorf("chainage %g: river offset %g, want 20", c.Chainage, d)
		}
	}
}

func TestCrossSections_outOfRange(t *testing.T) {
	r := newTestLine(t)
	_, err := r.CrossSections(CrossSectionConfig{Start: 0, End: 1300, Spacing: 100, OffsetRiver: 1, OffsetPolder: 1})
	var e *ChainageOutOfRangeError
	if !errors.As(err, &e) {
		t.Fatalf("want ChainageOutOfRangeError, have %v", err)
	}
	if e.Chainage != 1300 {
		t.Errorf("chainage %g", e.Chainage)
	}

	for _, cfg := range []CrossSectionConfig{
		{Start: 0, End: math.Inf(1), Spacing: 100},
		{Start: 0, End: math.NaN(), Spacing: 100},
		{Start: math.NaN(), End: 1000, Spacing: 100},
		{Start: -100, End: 1000, Spacing: 100},
	} {
		_, err := r.CrossSections(cfg)
		if !errors.As(err, &e) {
			t.Errorf("%+v: want ChainageOutOfRangeError, have %v", cfg, err)
		}
	}
}

func TestChainages(t *testing.T) {
	tests := []struct {
		start, end, step float64
		want             []float64
	}{
		{0, 1000, 100, []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}},
		{0, 250, 100, []float64{0, 100, 200}},
		{50, 50, 10, []float64{50}},
		{0, 0.3, 0.1, []float64{0, 0.1, 0.2, 0.3}},
	}
	for _, test := range tests {
		have, err := Chainages(test.start, test.end, test.step)
		if err != nil {
			t.Fatal(err)
		}
		if len(have) != len(test.want) || !floats.EqualApprox(have, test.want, testTolerance) {
			t.Errorf("Chainages(%g, %g, %g) = %v, want %v", test.start, test.end, test.step, have, test.want)
		}
	}
	if _, err := Chainages(0, 100, 0); err != ErrInvalidSpacing {
		t.Errorf("zero spacing: %v", err)
	}
	if _, err := Chainages(0, 100, -10); err != ErrInvalidSpacing {
		t.Errorf("negative spacing: %v", err)
	}
	if _, err := Chainages(100, 0, 10); err != ErrInvalidRange {
		t.Errorf("reversed range: %v", err)
	}
	for _, v := range [][3]float64{
		{math.NaN(), 100, 10},
		{0, math.NaN(), 10},
		{0, math.Inf(1), 10},
		{math.Inf(-1), 100, 10},
	} {
		if _, err := Chainages(v[0], v[1], v[2]); err != ErrInvalidRange {
			t.Errorf("Chainages(%g, %g, %g): want ErrInvalidRange, have %v", v[0], v[1], v[2], err)
		}
	}
	for _, step := range []float64{math.NaN(), math.Inf(1)} {
		if _, err := Chainages(0, 100, step); err != ErrInvalidSpacing {
			t.Errorf("spacing %g: want ErrInvalidSpacing, have %v", step, err)
		}
	}
}

// The last chainage must not overshoot the end of the range through
// accumulated rounding.
func TestChainages_endExact(t *testing.T) {
	have, err := Chainages(0, 0.3, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if last := have[len(have)-1]; last != 0.3 {
		t.Errorf("last chainage %v, want 0.3", last)
	}
}

func TestChainageLabel(t *testing.T) {
	for c, want := range map[float64]string{
		0:      "    0",
		50:     "   50",
		1000:   " 1000",
		12500:  "12500",
		123456: "123456",
		12.5:   " 12.5",
	} {
		if have := ChainageLabel(c); have != want {
			t.Errorf("ChainageLabel(%g) = %q, want %q", c, have, want)
		}
	}
}

func TestCrossSectionsLabels(t *testing.T) {
	r := newTestLine(t)
	cs, err := r.CrossSections(CrossSectionConfig{Start: 0, End: 200, Spacing: 100})
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, c := range cs {
		labels = append(labels, c.Label)
	}
	if want := []string{"    0", "  100", "  200"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("have %q, want %q", labels, want)
	}
}
