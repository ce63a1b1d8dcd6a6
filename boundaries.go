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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

// ReadBoundaries reads section boundaries from a table with a header
// row followed by rows holding a start chainage and a section name.
// The table can be a comma separated text file (.csv, .txt) or a
// Microsoft Excel file (.xlsx). For Excel files, sheet selects the
// sheet to read; the first sheet is used if it is empty.
func ReadBoundaries(path, sheet string) ([]Boundary, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("riskeer: opening section file: %w", err)
		}
		defer f.Close()
		b, err := ReadBoundariesCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%w in '%s'", err, path)
		}
		return b, nil
	case ".xlsx":
		return readBoundariesXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("riskeer: unsupported section file type '%s'", ext)
	}
}

// ReadBoundariesCSV reads section boundaries from comma separated
// text. The first row is a header and is ignored, as are blank rows.
func ReadBoundariesCSV(r io.Reader) ([]Boundary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var o []Boundary
	header := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("riskeer: reading section table: %w", err)
		}
		if header {
			header = false
			continue
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		b, err := parseBoundary(rec)
		if err != nil {
			return nil, fmt.Errorf("riskeer: section table line %d: %w", line, err)
		}
		o = append(o, b)
	}
	return o, nil
}

func readBoundariesXLSX(path, sheet string) ([]Boundary, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("riskeer: opening xlsx file: %w", err)
	}
	var s *xlsx.Sheet
	if sheet == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("riskeer: xlsx file '%s' has no sheets", path)
		}
		s = f.Sheets[0]
	} else {
		var ok bool
		if s, ok = f.Sheet[sheet]; !ok {
			return nil, fmt.Errorf("riskeer: xlsx file '%s' has no sheet %s", path, sheet)
		}
	}

	var o []Boundary
	for i, row := range s.Rows {
		if i == 0 || row == nil {
			continue
		}
		rec := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			if c != nil {
				rec[j] = c.Value
			}
		}
		if blank(rec) {
			continue
		}
		b, err := parseBoundary(rec)
		if err != nil {
			return nil, fmt.Errorf("riskeer: sheet %s row %d in '%s': %w", s.Name, i+1, path, err)
		}
		o = append(o, b)
	}
	return o, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseBoundary(rec []string) (Boundary, error) {
	if len(rec) < 2 {
		return Boundary{}, fmt.Errorf("expected a start chainage and a section name, got %q", rec)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		return Boundary{}, fmt.Errorf("invalid start chainage: %w", err)
	}
	return Boundary{Start: start, Name: strings.TrimSpace(rec[1])}, nil
}
