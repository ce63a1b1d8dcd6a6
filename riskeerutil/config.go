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
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/breinbaas/riskeer"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// endOfLine is the CrossSections.End value that stands for the end of
// the reference line.
const endOfLine = -1

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="dwarsprofielen.shp")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("riskeer: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}

// CrossSectionConfig returns the cross section settings held in cfg.
// An End of -1 is returned unchanged; it is resolved against the
// length of the reference line once that has been read.
func CrossSectionConfig(cfg *viper.Viper) (riskeer.CrossSectionConfig, error) {
	var o riskeer.CrossSectionConfig
	for _, v := range []struct {
		name string
		dst  *float64
	}{
		{"CrossSections.Start", &o.Start},
		{"CrossSections.End", &o.End},
		{"CrossSections.Spacing", &o.Spacing},
		{"CrossSections.OffsetRiver", &o.OffsetRiver},
		{"CrossSections.OffsetPolder", &o.OffsetPolder},
	} {
		f, err := cast.ToFloat64E(cfg.Get(v.name))
		if err != nil {
			return o, fmt.Errorf("riskeer: reading '%s': %v", v.name, err)
		}
		*v.dst = f
	}
	if o.OffsetRiver < 0 || o.OffsetPolder < 0 {
		return o, fmt.Errorf("riskeer: cross section offsets must not be negative, got %g (river) and %g (polder)",
			o.OffsetRiver, o.OffsetPolder)
	}
	return o, nil
}

// WriteConfig writes the current configuration to w in TOML format.
func WriteConfig(w io.Writer) error {
	c := make(map[string]interface{})
	for _, option := range options {
		if option.name == "config" {
			continue
		}
		parts := strings.Split(option.name, ".")
		m := c
		for _, p := range parts[:len(parts)-1] {
			sub, ok := m[p].(map[string]interface{})
			if !ok {
				sub = make(map[string]interface{})
				m[p] = sub
			}
			m = sub
		}
		v := Cfg.Get(option.name)
		switch option.defaultVal.(type) {
		case float64:
			// Flag values are returned as strings.
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return fmt.Errorf("riskeer: reading '%s': %v", option.name, err)
			}
			v = f
		case string:
			v = cast.ToString(v)
		}
		m[parts[len(parts)-1]] = v
	}
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("riskeer: writing configuration: %v", err)
	}
	return nil
}
