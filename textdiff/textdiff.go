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

// Package textdiff renders line diffs of two texts.
//
// [Unified] aligns the lines with the same algorithms that [znkr.io/docsim.Align] uses and prints
// the result in unified format, [Patch] produces a patch with file headers for tools that expect
// the output of diff -u.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"znkr.io/docsim"
	"znkr.io/docsim/internal/byteview"
	"znkr.io/docsim/internal/config"
	"znkr.io/docsim/internal/impl"
	"znkr.io/docsim/internal/rvecs"
	"znkr.io/docsim/textdiff/color"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const (
	missingNewline = "\\ No newline at end of file\n"
	resetColor     = "\033[0m"
)

// Unified compares the lines in x and y and returns the changes necessary to convert from one to
// the other in unified format.
//
// The following options are supported: [docsim.Context], [docsim.Minimal], [docsim.MinRun],
// [docsim.Budget], [docsim.Junk], [TerminalColors]. A Junk predicate must accept strings, it's
// called with lines including their line terminator.
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Unified[T string | []byte](x, y T, opts ...docsim.Option) T {
	cfg := config.FromOptions(opts, config.Context|config.Minimal|config.MinRun|config.Budget|config.Junk|config.Color)

	xlines, xmissing := byteview.SplitLines(byteview.From(x))
	ylines, ymissing := byteview.SplitLines(byteview.From(y))

	// A last line without newline is different from the same line with a newline, the texts
	// compare the terminator as well.
	blocks, _ := impl.Align(texts(xlines), texts(ylines), cfg)
	rx, ry := rvecs.FromBlocks(len(xlines), len(ylines), blocks)

	colors := cfg.Colors
	if colors == nil {
		colors = &config.ColorConfig{}
	}

	var b byteview.Builder[T]
	for h := range rvecs.Hunks(rx, ry, cfg) {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.S0+1, h.S1-h.S0, h.T0+1, h.T1-h.T0)
		writeColored(&b, colors.HunkHeader, header+"\n")
		for s, t := h.S0, h.T0; s < h.S1 || t < h.T1; {
			for s < h.S1 && rx[s] {
				writeLine(&b, colors.Delete, prefixDelete, xlines[s], s == xmissing)
				s++
			}
			for t < h.T1 && ry[t] {
				writeLine(&b, colors.Insert, prefixInsert, ylines[t], t == ymissing)
				t++
			}
			for s < h.S1 && t < h.T1 && !rx[s] && !ry[t] {
				writeLine(&b, colors.Match, prefixMatch, xlines[s], s == xmissing)
				s++
				t++
			}
		}
	}
	return b.Build()
}

func texts(lines []byteview.ByteView) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func writeLine[T string | []byte](b *byteview.Builder[T], color, prefix string, line byteview.ByteView, missing bool) {
	writeColored(b, color, prefix+line.String())
	if missing {
		b.WriteString("\n" + missingNewline)
	}
}

// writeColored writes s in the given color. The color is reset before the line terminator.
func writeColored[T string | []byte](b *byteview.Builder[T], color, s string) {
	if color == "" {
		b.WriteString(s)
		return
	}
	text, eol := strings.CutSuffix(s, "\n")
	b.WriteString(color)
	b.WriteString(text)
	b.WriteString(resetColor)
	if eol {
		b.WriteString("\n")
	}
}

// Patch returns the differences between x and y in the format of diff -u, with "---" and "+++"
// file headers. Unlike [Unified], Patch uses the alignment of Python's difflib, which is what
// most tools that consume such patches are tested against.
//
// context is the number of unchanged lines around every change, a negative value means 3.
func Patch(fromFile, toFile, x, y string, context int) (string, error) {
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        patchLines(x),
		B:        patchLines(y),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  context,
	})
	if err != nil {
		return "", fmt.Errorf("writing patch: %w", err)
	}
	return out, nil
}

// patchLines splits s into lines that all end in a newline. A missing newline at the end is
// replaced by the usual marker.
func patchLines(s string) []string {
	lines, missing := byteview.SplitLines(byteview.From(s))
	out := texts(lines)
	if missing >= 0 {
		out[missing] += "\n" + missingNewline
	}
	return out
}

// TerminalColors colors the output of [Unified] with ANSI escape sequences. Without options, the
// colors of git are used.
func TerminalColors(opts ...color.Option) docsim.Option {
	return func(cfg *config.Config) config.Flag {
		cc := config.DefaultColors
		for _, opt := range opts {
			opt(&cc)
		}
		cfg.Colors = &cc
		return config.Color
	}
}
