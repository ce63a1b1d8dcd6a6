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

package riskeerutil

import (
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/breinbaas/riskeer"
	"github.com/sirupsen/logrus"
)

// CrossSections reads the reference line in refFile, creates cross
// sections along it as specified by cfg, and writes them to outputFile
// with their chainage in the attribute labelField. If cfg.End is -1,
// the cross sections continue to the end of the reference line.
func CrossSections(log logrus.FieldLogger, refFile, outputFile, labelField string, cfg riskeer.CrossSectionConfig) error {
	log.WithField("file", refFile).Info("reading reference line")
	r, err := riskeer.ReadReferenceLine(refFile)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"vertices": r.Len(),
		"length":   r.Length(),
	}).Debug("read reference line")

	if cfg.End == endOfLine {
		cfg.End = r.Length()
	}
	log.WithFields(logrus.Fields{
		"start":   cfg.Start,
		"end":     cfg.End,
		"spacing": cfg.Spacing,
	}).Info("creating cross sections")
	cs, err := r.CrossSections(cfg)
	if err != nil {
		return err
	}

	w, err := riskeer.NewFeatureWriter(outputFile, labelField)
	if err != nil {
		return err
	}
	if err := riskeer.WriteCrossSections(w, cs); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := copyProjection(refFile, outputFile); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":  outputFile,
		"count": len(cs),
	}).Info("wrote cross sections")
	return nil
}

// Sections reads the reference line in refFile and the section
// boundaries in boundaryFile, splits the reference line into sections,
// and writes them to outputFile with their names in the attribute
// nameField.
func Sections(log logrus.FieldLogger, refFile, boundaryFile, sheet, outputFile, nameField string) error {
	log.WithField("file", refFile).Info("reading reference line")
	r, err := riskeer.ReadReferenceLine(refFile)
	if err != nil {
		return err
	}
	log.WithField("file", boundaryFile).Info("reading section boundaries")
	b, err := riskeer.ReadBoundaries(boundaryFile, sheet)
	if err != nil {
		return err
	}
	s, err := r.Sections(b)
	if err != nil {
		return err
	}
	for _, ss := range s {
		log.WithFields(logrus.Fields{
			"name":  ss.Name,
			"start": ss.Start,
			"end":   ss.End,
		}).Debug("section")
	}

	w, err := riskeer.NewFeatureWriter(outputFile, nameField)
	if err != nil {
		return err
	}
	if err := riskeer.WriteSections(w, s); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := copyProjection(refFile, outputFile); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":  outputFile,
		"count": len(s),
	}).Info("wrote sections")
	return nil
}

// Info writes a description of the reference line in refFile to w.
func Info(w io.Writer, refFile string) error {
	r, err := riskeer.ReadReferenceLine(refFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Reference line: %s\nVertices: %d\nLength: %.3f m\n\n", refFile, r.Len(), r.Length())
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Chainage\tX\tY\t")
	for _, p := range r.Points() {
		fmt.Fprintf(tw, "%.3f\t%.3f\t%.3f\t\n", p.Chainage, p.X, p.Y)
	}
	return tw.Flush()
}

// copyProjection copies the projection file of the reference line, if
// there is one, to accompany a shapefile output. Coordinates are never
// reprojected, so the output shares the projection of the input.
func copyProjection(refFile, outputFile string) error {
	if strings.ToLower(filepath.Ext(outputFile)) != ".shp" {
		return nil
	}
	prj, err := riskeer.Projection(refFile)
	if err != nil || prj == "" {
		return err
	}
	f := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".prj"
	if err := ioutil.WriteFile(f, []byte(prj), 0644); err != nil {
		return fmt.Errorf("riskeer: writing projection file: %v", err)
	}
	return nil
}
