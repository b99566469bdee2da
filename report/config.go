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

package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"znkr.io/docsim"
	"znkr.io/docsim/classify"
	"znkr.io/docsim/markdown"
)

// ErrInvalidConfig is returned for configurations that can't be used to compare documents.
var ErrInvalidConfig = errors.New("invalid config")

// Config controls what [Compare] computes. The zero value compares whole documents line by line
// without sections or normalization. Use [DefaultConfig] for the defaults of the docsim tool.
type Config struct {
	// If > 0, both documents are split into sections at headings of this level.
	SectionLevel int `yaml:"section_level"`

	// Heading syntax used for sections. HeadingPrefix takes precedence over HeadingRegexp, if
	// neither is set, ATX headings are used. See [markdown.PrefixPattern] and
	// [markdown.CompilePattern].
	HeadingPrefix string `yaml:"heading_prefix"`
	HeadingRegexp string `yaml:"heading_regexp"`

	// If > 0, only the first Window lines of both documents are used for the hunk listing.
	Window int `yaml:"window"`

	// Remove blank lines at the end of both documents.
	NormalizeTrailingNewline bool `yaml:"normalize_trailing_newline"`

	// Additional normalizations applied to both documents, see [ParseNormalize].
	Normalize []string `yaml:"normalize"`

	// Treat blank lines as junk, they can't anchor a match.
	JunkBlank bool `yaml:"junk_blank"`

	// Alignment options, see [docsim.Minimal], [docsim.MinRun], and [docsim.Budget].
	Minimal bool `yaml:"minimal"`
	MinRun  int  `yaml:"min_run"`
	Budget  int  `yaml:"budget"`

	// Ratio required to pass. Zero disables the check.
	Target float64 `yaml:"target"`

	// Compute a character level ratio in addition to the line ratio. The character diff gives up
	// after CharTimeout and reports what it found until then. Zero means no timeout.
	CharLevel   bool          `yaml:"char_level"`
	CharTimeout time.Duration `yaml:"char_timeout"`

	// Restrict the comparison to a region of both documents.
	Region RegionConfig `yaml:"region"`

	// Junk lines, replaces JunkBlank if set.
	Junk func(line string) bool `yaml:"-"`

	// Classifier for hunks. The zero value means [classify.Default].
	Classifier classify.Classifier `yaml:"-"`
}

// RegionConfig are the markers of a region, see [markdown.ExtractRegion].
type RegionConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Enabled reports whether a region is configured.
func (r RegionConfig) Enabled() bool { return r.Start != "" || r.End != "" }

// DefaultConfig returns the default configuration of the docsim tool.
func DefaultConfig() Config {
	return Config{
		Target:      0.95,
		CharTimeout: time.Second,
	}
}

// LoadConfig reads a YAML configuration file. Fields that are not present in the file keep their
// value from [DefaultConfig].
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error
	if c.SectionLevel < 0 || c.SectionLevel > 6 {
		errs = append(errs, fmt.Errorf("%w: section_level must be between 0 and 6, got %d", ErrInvalidConfig, c.SectionLevel))
	}
	if c.Window < 0 {
		errs = append(errs, fmt.Errorf("%w: window must not be negative, got %d", ErrInvalidConfig, c.Window))
	}
	if c.Target < 0 || c.Target > 1 {
		errs = append(errs, fmt.Errorf("%w: target must be between 0 and 1, got %v", ErrInvalidConfig, c.Target))
	}
	if c.CharTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: char_timeout must not be negative, got %v", ErrInvalidConfig, c.CharTimeout))
	}
	if _, err := ParseNormalize(c.Normalize); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.headingPattern(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var normalizeNames = map[string]markdown.NormalizeFlag{
	"trim-trailing-space":       markdown.TrimTrailingSpace,
	"expand-tabs":               markdown.ExpandTabs,
	"collapse-spaces":           markdown.CollapseSpaces,
	"collapse-blank-lines":      markdown.CollapseBlankLines,
	"trim-trailing-blank-lines": markdown.TrimTrailingBlankLines,
	"whitespace":                markdown.Whitespace,
}

// ParseNormalize converts normalization names to flags. Valid names are "trim-trailing-space",
// "expand-tabs", "collapse-spaces", "collapse-blank-lines", "trim-trailing-blank-lines", and
// "whitespace" for all of them.
func ParseNormalize(names []string) (markdown.NormalizeFlag, error) {
	var flags markdown.NormalizeFlag
	for _, name := range names {
		f, ok := normalizeNames[name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown normalization %q", ErrInvalidConfig, name)
		}
		flags |= f
	}
	return flags, nil
}

func (c Config) headingPattern() (markdown.HeadingPattern, error) {
	switch {
	case c.HeadingPrefix != "":
		return markdown.PrefixPattern(c.HeadingPrefix), nil
	case c.HeadingRegexp != "":
		p, err := markdown.CompilePattern(c.HeadingRegexp)
		if err != nil {
			return markdown.HeadingPattern{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return p, nil
	default:
		return markdown.ATX, nil
	}
}

func (c Config) normalizeFlags() markdown.NormalizeFlag {
	flags, _ := ParseNormalize(c.Normalize)
	if c.NormalizeTrailingNewline {
		flags |= markdown.TrimTrailingBlankLines
	}
	return flags
}

func (c Config) options() []docsim.Option {
	var opts []docsim.Option
	if c.Minimal {
		opts = append(opts, docsim.Minimal())
	}
	if c.MinRun > 1 {
		opts = append(opts, docsim.MinRun(c.MinRun))
	}
	if c.Budget > 0 {
		opts = append(opts, docsim.Budget(c.Budget))
	}
	switch {
	case c.Junk != nil:
		opts = append(opts, docsim.Junk(c.Junk))
	case c.JunkBlank:
		opts = append(opts, docsim.Junk(isBlank))
	}
	return opts
}

func (c Config) classifier() classify.Classifier {
	if len(c.Classifier.Rules) == 0 && c.Classifier.Fallback == "" {
		return classify.Default
	}
	return c.Classifier
}
