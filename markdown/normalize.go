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
	"strings"
)

// NormalizeFlag selects a normalization step of [Normalize].
type NormalizeFlag int

const (
	TrimTrailingSpace      NormalizeFlag = 1 << iota // Remove spaces and tabs at the end of every line.
	ExpandTabs                                       // Replace every tab by four spaces.
	CollapseSpaces                                   // Replace runs of spaces inside a line by one space.
	CollapseBlankLines                               // Replace runs of blank lines by one blank line.
	TrimTrailingBlankLines                           // Remove blank lines at the end of the document.
)

// Whitespace applies all whitespace normalizations.
const Whitespace = TrimTrailingSpace | ExpandTabs | CollapseSpaces | CollapseBlankLines | TrimTrailingBlankLines

// Normalize returns a copy of doc with the selected normalizations applied. Removed lines leave
// gaps in the line numbers, all other lines keep their number.
//
// Leading indentation is never collapsed, it's significant for markdown.
func Normalize(doc Document, flags NormalizeFlag) Document {
	if flags == 0 {
		return doc
	}
	out := Document{
		lines:          make([]Line, 0, len(doc.lines)),
		missingNewline: doc.missingNewline,
	}
	prevBlank := false
	for _, l := range doc.lines {
		text := l.Text
		if flags&ExpandTabs != 0 {
			text = strings.ReplaceAll(text, "\t", "    ")
		}
		if flags&TrimTrailingSpace != 0 {
			text = strings.TrimRight(text, " \t")
		}
		if flags&CollapseSpaces != 0 {
			text = collapseSpaces(text)
		}
		blank := isBlank(text)
		if flags&CollapseBlankLines != 0 && blank && prevBlank {
			continue
		}
		prevBlank = blank
		out.lines = append(out.lines, Line{No: l.No, Text: text})
	}
	if flags&TrimTrailingBlankLines != 0 {
		n := len(out.lines)
		for n > 0 && isBlank(out.lines[n-1].Text) {
			n--
		}
		if n < len(out.lines) {
			out.lines = out.lines[:n]
			out.missingNewline = false
		}
	}
	return out
}

func collapseSpaces(s string) string {
	indent := len(s) - len(strings.TrimLeft(s, " "))
	body := s[indent:]
	if !strings.Contains(body, "  ") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:indent])
	space := false
	for i := range len(body) {
		c := body[i]
		if c == ' ' {
			if space {
				continue
			}
			space = true
		} else {
			space = false
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
