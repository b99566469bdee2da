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

package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Heading is a parsed heading line.
type Heading struct {
	Level int
	Title string
}

// HeadingPattern recognizes heading lines. The zero value recognizes ATX headings, see [ATX].
type HeadingPattern struct {
	name  string
	match func(line string) (Heading, bool)
}

// ATX recognizes ATX headings: Up to three spaces of indentation, 1-6 '#' characters, followed by
// a space, a tab, or the end of the line. An optional closing sequence of '#' is not part of the
// title.
var ATX = HeadingPattern{name: "atx", match: matchATX}

var atxRE = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*))?$`)

// closingRE matches the optional closing sequence of an ATX heading.
var closingRE = regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`)

func matchATX(line string) (Heading, bool) {
	m := atxRE.FindStringSubmatch(line)
	if m == nil {
		return Heading{}, false
	}
	title := closingRE.ReplaceAllString(m[2], "")
	return Heading{Level: len(m[1]), Title: strings.TrimSpace(title)}, true
}

// CompilePattern returns a pattern from a regular expression with exactly two capturing groups:
// The first one matches the heading marker, its length is the level of the heading. The second
// one matches the title.
func CompilePattern(expr string) (HeadingPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return HeadingPattern{}, fmt.Errorf("compiling heading pattern: %w", err)
	}
	if n := re.NumSubexp(); n != 2 {
		return HeadingPattern{}, fmt.Errorf("heading pattern %q has %d capturing groups, want 2", expr, n)
	}
	return HeadingPattern{
		name: expr,
		match: func(line string) (Heading, bool) {
			m := re.FindStringSubmatch(line)
			if m == nil || len(m[1]) == 0 {
				return Heading{}, false
			}
			return Heading{Level: len(m[1]), Title: strings.TrimSpace(m[2])}, true
		},
	}, nil
}

// PrefixPattern recognizes lines that start with prefix, e.g. "## ". The title is the rest of the
// line. The level of all headings is the number of '#' in prefix, but at least 1.
func PrefixPattern(prefix string) HeadingPattern {
	level := max(1, strings.Count(prefix, "#"))
	return HeadingPattern{
		name: fmt.Sprintf("prefix %q", prefix),
		match: func(line string) (Heading, bool) {
			rest, ok := strings.CutPrefix(line, prefix)
			if !ok {
				return Heading{}, false
			}
			return Heading{Level: level, Title: strings.TrimSpace(rest)}, true
		},
	}
}

// Match reports whether line is a heading.
func (p HeadingPattern) Match(line string) (Heading, bool) {
	if p.match == nil {
		return matchATX(line)
	}
	return p.match(line)
}

func (p HeadingPattern) String() string {
	if p.name == "" {
		return ATX.name
	}
	return p.name
}

// IsHeading reports whether line is an ATX heading of any level.
func IsHeading(line string) bool {
	return atxRE.MatchString(line)
}
