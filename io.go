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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

const (
	// maxFieldNameLength is the longest attribute name a dBase
	// table can hold.
	maxFieldNameLength = 10

	// labelLength is the width of the text attribute written to
	// output shapefiles.
	labelLength = 50
)

// ReadReferenceLine reads a reference line from a shapefile (.shp) or
// GeoJSON (.geojson, .json) file. Only the first feature in the file
// is used.
func ReadReferenceLine(path string) (*ReferenceLine, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		return readReferenceLineShp(path)
	case ".geojson", ".json":
		return readReferenceLineGeoJSON(path)
	default:
		return nil, fmt.Errorf("riskeer: unsupported reference line file type '%s'", ext)
	}
}

func readReferenceLineShp(path string) (*ReferenceLine, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("riskeer: opening reference line shapefile '%s': %w", path, err)
	}
	defer d.Close()

	g, _, more := d.DecodeRowFields()
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("riskeer: reading reference line shapefile '%s': %w", path, err)
	}
	if !more {
		return nil, fmt.Errorf("riskeer: reading reference line shapefile '%s': %w", path, ErrNoFeatures)
	}
	return ReferenceLineFromGeom(g)
}

// geoJSONObject holds the parts of a GeoJSON geometry, feature or
// feature collection needed to find the reference line.
type geoJSONObject struct {
	Type     string          `json:"type"`
	Geometry json.RawMessage `json:"geometry"`
	Features []struct {
		Geometry json.RawMessage `json:"geometry"`
	} `json:"features"`
}

func readReferenceLineGeoJSON(path string) (*ReferenceLine, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("riskeer: reading reference line file: %w", err)
	}
	var o geoJSONObject
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("riskeer: decoding reference line file '%s': %w", path, err)
	}
	raw := json.RawMessage(b)
	switch o.Type {
	case "Feature":
		raw = o.Geometry
	case "FeatureCollection":
		if len(o.Features) == 0 {
			return nil, fmt.Errorf("riskeer: reading reference line file '%s': %w", path, ErrNoFeatures)
		}
		raw = o.Features[0].Geometry
	}
	var gj geojson.Geometry
	if err := json.Unmarshal(raw, &gj); err != nil {
		return nil, fmt.Errorf("riskeer: decoding reference line geometry in '%s': %w", path, err)
	}
	g, err := decodeLines(&gj)
	if err != nil {
		return nil, fmt.Errorf("riskeer: decoding reference line geometry in '%s': %w", path, err)
	}
	return ReferenceLineFromGeom(g)
}

// decodeLines converts a GeoJSON LineString or MultiLineString into a
// geometry. The geojson package does not handle multi-line strings, so
// their parts are decoded one by one.
func decodeLines(gj *geojson.Geometry) (geom.Geom, error) {
	switch gj.Type {
	case "LineString":
		return geojson.FromGeoJSON(gj)
	case "MultiLineString":
		parts, ok := gj.Coordinates.([]interface{})
		if !ok {
			return nil, geojson.InvalidGeometryError{}
		}
		o := make(geom.MultiLineString, len(parts))
		for i, part := range parts {
			g, err := geojson.FromGeoJSON(&geojson.Geometry{Type: "LineString", Coordinates: part})
			if err != nil {
				return nil, err
			}
			o[i] = g.(geom.LineString)
		}
		return o, nil
	default:
		return nil, &UnsupportedGeometryError{Type: gj.Type}
	}
}

// Projection returns the contents of the .prj file that accompanies
// the shapefile at path, or an empty string if there is none.
func Projection(path string) (string, error) {
	prj := strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
	b, err := ioutil.ReadFile(prj)
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("riskeer: reading projection file: %w", err)
	}
	return string(b), nil
}

// FeatureWriter writes labelled lines to a vector file.
type FeatureWriter interface {
	// Write adds a feature with the given label and geometry.
	Write(label string, l geom.LineString) error

	// Close flushes and closes the output file.
	Close() error
}

// NewFeatureWriter creates a FeatureWriter for the file at path, whose
// type is chosen by its extension: .shp for shapefiles and .geojson or
// .json for GeoJSON. Labels are stored in the attribute named field.
func NewFeatureWriter(path, field string) (FeatureWriter, error) {
	if field == "" || len(field) > maxFieldNameLength {
		return nil, fmt.Errorf("riskeer: attribute name '%s' must be between 1 and %d characters long",
			field, maxFieldNameLength)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		e, err := shp.NewEncoderFromFields(path, goshp.POLYLINE, goshp.StringField(field, labelLength))
		if err != nil {
			return nil, fmt.Errorf("riskeer: creating output shapefile: %w", err)
		}
		return &shpWriter{e: e}, nil
	case ".geojson", ".json":
		return &geoJSONWriter{path: path, field: field}, nil
	default:
		return nil, fmt.Errorf("riskeer: unsupported output file type '%s'", ext)
	}
}

type shpWriter struct {
	e *shp.Encoder
}

func (w *shpWriter) Write(label string, l geom.LineString) error {
	if err := w.e.EncodeFields(geom.MultiLineString{l}, label); err != nil {
		return fmt.Errorf("riskeer: writing output shapefile: %w", err)
	}
	return nil
}

func (w *shpWriter) Close() error {
	w.e.Close() // shp.Encoder.Close reports no error.
	return nil
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   *geojson.Geometry `json:"geometry"`
}

type geoJSONWriter struct {
	path     string
	field    string
	features []geoJSONFeature
}

func (w *geoJSONWriter) Write(label string, l geom.LineString) error {
	g, err := geojson.ToGeoJSON(l)
	if err != nil {
		return fmt.Errorf("riskeer: encoding GeoJSON geometry: %w", err)
	}
	w.features = append(w.features, geoJSONFeature{
		Type:       "Feature",
		Properties: map[string]string{w.field: label},
		Geometry:   g,
	})
	return nil
}

func (w *geoJSONWriter) Close() error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("riskeer: creating output file: %w", err)
	}
	fc := struct {
		Type     string           `json:"type"`
		Features []geoJSONFeature `json:"features"`
	}{Type: "FeatureCollection", Features: w.features}
	if fc.Features == nil {
		fc.Features = []geoJSONFeature{}
	}
	if err := json.NewEncoder(f).Encode(fc); err != nil {
		f.Close()
		return fmt.Errorf("riskeer: writing output file: %w", err)
	}
	return f.Close()
}

// WriteCrossSections writes cs to w, labelled by chainage.
func WriteCrossSections(w FeatureWriter, cs []CrossSection) error {
	for _, c := range cs {
		if err := w.Write(c.Label, c.Geom); err != nil {
			return err
		}
	}
	return nil
}

// WriteSections writes s to w, labelled by name.
func WriteSections(w FeatureWriter, s []Section) error {
	for _, ss := range s {
		if err := w.Write(ss.Name, ss.Geom); err != nil {
			return err
		}
	}
	return nil
}
