// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"znkr.io/docsim/report"
)

const defaultConfigFile = ".docsim.yaml"

// configFlags are the flags that override report.Config fields.
type configFlags struct {
	sections      int
	headingPrefix string
	window        int
	target        float64
	normalize     []string
	charLevel     bool
	regionStart   string
	regionEnd     string
	junkBlank     bool
	minimal       bool
	budget        int
}

func (f *configFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.sections, "sections", 0, "Compare sections at this heading level (0 disables sections)")
	fs.StringVar(&f.headingPrefix, "heading-prefix", "", `Line prefix of headings, e.g. "## " (default ATX headings)`)
	fs.IntVar(&f.window, "window", 0, "Only list differences in the first N lines (0 for all)")
	fs.Float64Var(&f.target, "target", 0, "Similarity ratio required to pass (default 0.95)")
	fs.StringSliceVar(&f.normalize, "normalize", nil, "Normalizations applied to both documents, e.g. whitespace")
	fs.BoolVar(&f.charLevel, "char", false, "Also compute a character level similarity")
	fs.StringVar(&f.regionStart, "region-start", "", "Only compare from the first line containing this text")
	fs.StringVar(&f.regionEnd, "region-end", "", "Only compare up to the first line containing this text")
	fs.BoolVar(&f.junkBlank, "junk-blank", false, "Blank lines can't anchor matches")
	fs.BoolVar(&f.minimal, "minimal", false, "Use a minimal alignment instead of the greedy longest-match alignment")
	fs.IntVar(&f.budget, "budget", 0, "Limit the alignment effort, the ratio is a lower bound if the limit is hit")
}

// loadConfig layers the configuration: defaults, config file, environment, and flags.
func loadConfig(cmd *cobra.Command, opts *globalOptions, f *configFlags) (report.Config, error) {
	cfg := report.DefaultConfig()

	path := opts.config
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		var err error
		cfg, err = report.LoadConfig(path)
		if err != nil {
			return report.Config{}, err
		}
		slog.Debug("Loaded config", "path", path)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return report.Config{}, err
	}

	if f != nil {
		fs := cmd.Flags()
		if fs.Changed("sections") {
			cfg.SectionLevel = f.sections
		}
		if fs.Changed("heading-prefix") {
			cfg.HeadingPrefix = f.headingPrefix
		}
		if fs.Changed("window") {
			cfg.Window = f.window
		}
		if fs.Changed("target") {
			cfg.Target = f.target
		}
		if fs.Changed("normalize") {
			cfg.Normalize = f.normalize
		}
		if fs.Changed("char") {
			cfg.CharLevel = f.charLevel
		}
		if fs.Changed("region-start") {
			cfg.Region.Start = f.regionStart
		}
		if fs.Changed("region-end") {
			cfg.Region.End = f.regionEnd
		}
		if fs.Changed("junk-blank") {
			cfg.JunkBlank = f.junkBlank
		}
		if fs.Changed("minimal") {
			cfg.Minimal = f.minimal
		}
		if fs.Changed("budget") {
			cfg.Budget = f.budget
		}
	}

	if err := cfg.Validate(); err != nil {
		return report.Config{}, err
	}
	return cfg, nil
}

// envVars maps environment variables to config fields.
var envVars = []struct {
	name string
	set  func(cfg *report.Config, v string) error
}{
	{"DOCSIM_SECTION_LEVEL", func(cfg *report.Config, v string) (err error) {
		cfg.SectionLevel, err = strconv.Atoi(v)
		return err
	}},
	{"DOCSIM_HEADING_PREFIX", func(cfg *report.Config, v string) error {
		cfg.HeadingPrefix = v
		return nil
	}},
	{"DOCSIM_HEADING_REGEXP", func(cfg *report.Config, v string) error {
		cfg.HeadingRegexp = v
		return nil
	}},
	{"DOCSIM_WINDOW", func(cfg *report.Config, v string) (err error) {
		cfg.Window, err = strconv.Atoi(v)
		return err
	}},
	{"DOCSIM_TARGET", func(cfg *report.Config, v string) (err error) {
		cfg.Target, err = strconv.ParseFloat(v, 64)
		return err
	}},
	{"DOCSIM_NORMALIZE", func(cfg *report.Config, v string) error {
		cfg.Normalize = nil
		for name := range strings.SplitSeq(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Normalize = append(cfg.Normalize, name)
			}
		}
		return nil
	}},
	{"DOCSIM_CHAR_LEVEL", func(cfg *report.Config, v string) (err error) {
		cfg.CharLevel, err = strconv.ParseBool(v)
		return err
	}},
	{"DOCSIM_JUNK_BLANK", func(cfg *report.Config, v string) (err error) {
		cfg.JunkBlank, err = strconv.ParseBool(v)
		return err
	}},
	{"DOCSIM_MINIMAL", func(cfg *report.Config, v string) (err error) {
		cfg.Minimal, err = strconv.ParseBool(v)
		return err
	}},
	{"DOCSIM_BUDGET", func(cfg *report.Config, v string) (err error) {
		cfg.Budget, err = strconv.Atoi(v)
		return err
	}},
	{"DOCSIM_REGION_START", func(cfg *report.Config, v string) error {
		cfg.Region.Start = v
		return nil
	}},
	{"DOCSIM_REGION_END", func(cfg *report.Config, v string) error {
		cfg.Region.End = v
		return nil
	}},
}

// applyEnv overrides config fields with the environment variables that are set.
func applyEnv(cfg *report.Config, lookup func(string) (string, bool)) error {
	var errs []error
	for _, ev := range envVars {
		v, ok := lookup(ev.name)
		if !ok {
			continue
		}
		if err := ev.set(cfg, v); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", report.ErrInvalidConfig, ev.name, v, err))
		}
	}
	return errors.Join(errs...)
}
