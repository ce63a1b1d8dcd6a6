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
	"fmt"
	"math"
	"strconv"

	"github.com/ctessum/geom"
	"github.com/gonum/floats"
)

// labelWidth is the minimum width of cross section labels.
const labelWidth = 5

// CrossSection is a line perpendicular to a reference line.
type CrossSection struct {
	Chainage float64
	Label    string

	// Geom runs from the river side to the polder side.
	Geom geom.LineString
}

// CrossSectionConfig holds the parameters for generating cross sections.
type CrossSectionConfig struct {
	// Start and End are the chainages of the first and last
	// cross sections. End is included when it falls on a multiple
	// of Spacing from Start.
	Start, End float64

	// Spacing is the distance along the reference line between
	// consecutive cross sections.
	Spacing float64

	// OffsetRiver and OffsetPolder are the lengths of the cross
	// section on either side of the reference line.
	OffsetRiver, OffsetPolder float64
}

// CrossSections creates cross sections along r as specified by cfg.
func (r *ReferenceLine) CrossSections(cfg CrossSectionConfig) ([]CrossSection, error) {
	for _, c := range []float64{cfg.Start, cfg.End} {
		if _, err := r.interval(c); err != nil {
			return nil, err
		}
	}
	chainages, err := Chainages(cfg.Start, cfg.End, cfg.Spacing)
	if err != nil {
		return nil, err
	}
	o := make([]CrossSection, 0, len(chainages))
	for _, c := range chainages {
		cs, err := r.CrossSectionAt(c, cfg.OffsetRiver, cfg.OffsetPolder)
		if err != nil {
			return nil, err
		}
		o = append(o, cs)
	}
	return o, nil
}

// CrossSectionAt creates a single cross section at chainage c.
func (r *ReferenceLine) CrossSectionAt(c, offsetRiver, offsetPolder float64) (CrossSection, error) {
	p, a, err := r.PointAndAngleAt(c)
	if err != nil {
		return CrossSection{}, err
	}
	dx, dy := math.Cos(a-math.Pi/2), math.Sin(a-math.Pi/2)
	return CrossSection{
		Chainage: c,
		Label:    ChainageLabel(c),
		Geom: geom.LineString{
			{X: p.X + offsetRiver*dx, Y: p.Y + offsetRiver*dy},
			{X: p.X - offsetPolder*dx, Y: p.Y - offsetPolder*dy},
		},
	}, nil
}

// Chainages returns start, start+step, start+2*step, ... up to and
// including end. All three values must be finite.
func Chainages(start, end, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, ErrInvalidSpacing
	}
	if !finite(start) || !finite(end) || start > end {
		return nil, ErrInvalidRange
	}
	const tol = 1e-9
	var o []float64
	for i := 0; ; i++ {
		c := start + float64(i)*step
		if floats.EqualWithinAbsOrRel(c, end, tol, tol) {
			o = append(o, end)
			break
		}
		if c > end {
			break
		}
		o = append(o, c)
	}
	return o, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ChainageLabel formats chainage c for use as a feature attribute.
// Integer chainages are right aligned in a field of width 5.
func ChainageLabel(c float64) string {
	return fmt.Sprintf("%*s", labelWidth, strconv.FormatFloat(c, 'f', -1, 64))
}
