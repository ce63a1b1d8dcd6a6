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
	"fmt"
	"reflect"

	"github.com/ctessum/geom"
)

var (
	// ErrNoBoundaries is returned when a section table holds no rows.
	ErrNoBoundaries = errors.New("riskeer: no section boundaries")

	// ErrInvalidSpacing is returned when cross sections are requested
	// with a spacing that is not positive.
	ErrInvalidSpacing = errors.New("riskeer: cross section spacing must be greater than zero")

	// ErrInvalidRange is returned when the start chainage of a
	// cross section run is greater than its end chainage.
	ErrInvalidRange = errors.New("riskeer: start chainage is greater than end chainage")

	// ErrNoFeatures is returned when an input file contains no features.
	ErrNoFeatures = errors.New("riskeer: file contains no features")
)

// UnsupportedGeometryError is returned when a reference line is not
// a single simple line.
type UnsupportedGeometryError struct {
	Type string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("riskeer: reference lines must be LineString geometries but got a '%s' geometry", e.Type)
}

// ChainageOutOfRangeError is returned when a chainage lies outside
// of a reference line.
type ChainageOutOfRangeError struct {
	Chainage, Min, Max float64
}

func (e *ChainageOutOfRangeError) Error() string {
	return fmt.Sprintf("riskeer: invalid chainage %g is not between the start (%g) and end (%g) of the reference line",
		e.Chainage, e.Min, e.Max)
}

// InsufficientPointsError is returned when a reference line has fewer
// than two distinct vertices.
type InsufficientPointsError struct {
	N int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("riskeer: a reference line needs at least 2 distinct vertices, got %d", e.N)
}

// BoundaryOrderError is returned when section boundaries are not
// strictly increasing or a boundary does not start before the end of
// the reference line.
type BoundaryOrderError struct {
	// Index is the position of the offending boundary.
	Index int
	Start float64

	// Limit is the chainage of the previous boundary, or the length of
	// the reference line when PastEnd is true.
	Limit   float64
	PastEnd bool
}

func (e *BoundaryOrderError) Error() string {
	if e.PastEnd {
		return fmt.Sprintf("riskeer: section boundary %d at chainage %g must be less than the reference line length %g",
			e.Index, e.Start, e.Limit)
	}
	return fmt.Sprintf("riskeer: section boundary %d at chainage %g must be greater than the previous boundary at %g",
		e.Index, e.Start, e.Limit)
}

func geomTypeName(g geom.Geom) string {
	if g == nil {
		return "nil"
	}
	t := reflect.TypeOf(g)
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
