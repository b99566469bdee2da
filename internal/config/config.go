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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// docsim.Option.
package config

// Mode describes the alignment algorithm.
type Mode int

const (
	// Greedy longest-match alignment (Ratcliff/Obershelp). Not guaranteed to be minimal.
	ModeGreedy Mode = iota

	// Minimal alignment, a longest common subsequence found with Myers' algorithm.
	ModeMinimal
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for rendered hunks.
	Context int

	// Alignment algorithm.
	Mode Mode

	// MinRun is the shortest run of equal elements that is accepted as a match block.
	MinRun int

	// If > 0, both inputs are truncated to their first Window elements before aligning.
	Window int

	// If > 0, the greedy search gives up after this many element comparisons.
	Budget int

	// Junk reports elements that may not start a match. The argument is always of the element
	// type of the compared slices. Nil means nothing is junk.
	Junk func(any) bool

	// ANSI colors for rendered diffs, nil for plain text.
	Colors *ColorConfig
}

// ColorConfig holds the escape sequences written before the parts of a rendered diff. An empty
// sequence leaves that part uncolored.
type ColorConfig struct {
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
}

// DefaultColors are the colors used by git.
var DefaultColors = ColorConfig{
	HunkHeader: "\033[36m",
	Match:      "",
	Delete:     "\033[31m",
	Insert:     "\033[32m",
}

// Default is the default configuration.
var Default = Config{
	Context: 3,
	Mode:    ModeGreedy,
	MinRun:  1,
	Window:  0,
	Budget:  0,
	Junk:    nil,
	Colors:  nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Context Flag = 1 << iota
	Minimal
	MinRun
	Window
	Budget
	Junk
	Color
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "docsim.Context"
	case Minimal:
		return "docsim.Minimal"
	case MinRun:
		return "docsim.MinRun"
	case Window:
		return "docsim.Window"
	case Budget:
		return "docsim.Budget"
	case Junk:
		return "docsim.Junk"
	case Color:
		return "textdiff.TerminalColors"
	default:
		panic("never reached")
	}
}
