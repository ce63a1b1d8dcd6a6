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
	"os"
	"strings"

	"github.com/breinbaas/riskeer"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	// Options are the configuration options available to riskeer.
	options = []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank, the logfile will be saved in
              the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum severity of log messages. Valid values are
              "debug", "info", "warning" and "error".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ReferenceLine",
			usage: `
              ReferenceLine is the path to the shapefile (.shp) or GeoJSON file
              (.geojson, .json) holding the reference line, for example as exported
              from Riskeer. Only the first feature in the file is used and it must be
              a single line. The path can include environment variables.`,
			shorthand:  "r",
			defaultVal: "referentielijn.shp",
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags(), sectionsCmd.Flags(), infoCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output file. Its extension selects
              the format: .shp for a shapefile or .geojson or .json for GeoJSON. It can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags(), sectionsCmd.Flags()},
		},
		{
			name: "CrossSections.Start",
			usage: `
              CrossSections.Start is the chainage of the first cross section in meters.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags()},
		},
		{
			name: "CrossSections.End",
			usage: `
              CrossSections.End is the chainage of the last cross section in meters.
              The default is -1 which represents the end of the reference line.`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags()},
		},
		{
			name: "CrossSections.Spacing",
			usage: `
              CrossSections.Spacing is the distance in meters along the reference line
              between consecutive cross sections.`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags()},
		},
		{
			name: "CrossSections.OffsetRiver",
			usage: `
              CrossSections.OffsetRiver is the length in meters of each cross section
              on the river side of the reference line.`,
			defaultVal: 20.0,
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags()},
		},
		{
			name: "CrossSections.OffsetPolder",
			usage: `
              CrossSections.OffsetPolder is the length in meters of each cross section
              on the polder side of the reference line.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags()},
		},
		{
			name: "CrossSections.LabelField",
			usage: `
              CrossSections.LabelField is the name of the output attribute holding the
              chainage of each cross section.`,
			defaultVal: "Metrering",
			flagsets:   []*pflag.FlagSet{crossSectionsCmd.Flags()},
		},
		{
			name: "Sections.BoundaryFile",
			usage: `
              Sections.BoundaryFile is the path to a table (.csv, .txt or .xlsx) with a
              header row followed by rows holding the start chainage and name of each
              section, for example:

                start,vaknaam
                0,stph_01
                1000,stph_02

              Each section ends where the next one starts; the last section ends at the
              end of the reference line. It can include environment variables.`,
			shorthand:  "b",
			defaultVal: "vakindeling.csv",
			flagsets:   []*pflag.FlagSet{sectionsCmd.Flags()},
		},
		{
			name: "Sections.Sheet",
			usage: `
              Sections.Sheet is the name of the sheet to read when BoundaryFile is
              a Microsoft Excel file. If it is blank, the first sheet is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sectionsCmd.Flags()},
		},
		{
			name: "Sections.NameField",
			usage: `
              Sections.NameField is the name of the output attribute holding the name
              of each section.`,
			defaultVal: "Vaknaam",
			flagsets:   []*pflag.FlagSet{sectionsCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RISKEER")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(configCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(crossSectionsCmd)
	Root.AddCommand(sectionsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("riskeer: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "riskeer",
	Short: "Derive cross sections and section divisions from a reference line.",
	Long: `riskeer creates geometries along the reference line of a flood defence,
for use with Riskeer and related flood defence assessment tools. Positions along
the reference line are given as chainage: the distance in meters from the start
of the line, measured along the line.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RISKEER_var' where 'var' is the
name of the variable to be set, with any '.' replaced by '_'.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of riskeer.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("riskeer v%s\n", riskeer.Version)
	},
	DisableAutoGenTag: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `config prints the configuration that results from the configuration file,
command-line arguments and environment variables, in a format that can be
saved and used as a configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return WriteConfig(cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe a reference line",
	Long: `info prints the number of vertices and the length of the reference line
specified by the ReferenceLine configuration variable, followed by the chainage
and coordinates of each vertex.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Info(cmd.OutOrStdout(), os.ExpandEnv(Cfg.GetString("ReferenceLine")))
	},
	DisableAutoGenTag: true,
}

// crossSectionsCmd creates cross sections along a reference line.
var crossSectionsCmd = &cobra.Command{
	Use:     "crosssections",
	Aliases: []string{"dwarsprofielen"},
	Short:   "Create cross sections",
	Long: `crosssections creates lines perpendicular to the reference line at regular
intervals between CrossSections.Start and CrossSections.End. Each line extends
CrossSections.OffsetRiver meters to the river side and CrossSections.OffsetPolder
meters to the polder side of the reference line, where the river side is to the
left when facing in the direction of increasing chainage. Each line is labelled
with its chainage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		csc, err := CrossSectionConfig(Cfg)
		if err != nil {
			return err
		}
		log, closeLog, err := newLogger(Cfg.GetString("LogLevel"), checkLogFile(Cfg.GetString("LogFile"), outputFile))
		if err != nil {
			return err
		}
		defer closeLog()
		return CrossSections(log,
			os.ExpandEnv(Cfg.GetString("ReferenceLine")),
			outputFile,
			Cfg.GetString("CrossSections.LabelField"),
			csc,
		)
	},
	DisableAutoGenTag: true,
}

// sectionsCmd divides a reference line into named sections.
var sectionsCmd = &cobra.Command{
	Use:     "sections",
	Aliases: []string{"vakindeling"},
	Short:   "Divide the reference line into sections",
	Long: `sections splits the reference line into named sections as listed in
Sections.BoundaryFile. The result can be imported into Riskeer as the section
division of a failure mechanism.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		log, closeLog, err := newLogger(Cfg.GetString("LogLevel"), checkLogFile(Cfg.GetString("LogFile"), outputFile))
		if err != nil {
			return err
		}
		defer closeLog()
		return Sections(log,
			os.ExpandEnv(Cfg.GetString("ReferenceLine")),
			os.ExpandEnv(Cfg.GetString("Sections.BoundaryFile")),
			Cfg.GetString("Sections.Sheet"),
			outputFile,
			Cfg.GetString("Sections.NameField"),
		)
	},
	DisableAutoGenTag: true,
}
