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

// Package markdown provides the document model used to compare transcriptions: line based
// documents, heading detection, sections and marker delimited regions.
//
// All functions in this package are pure. A [Document] is never modified after it was created,
// functions that change a document return a new one.
package markdown

import (
	"errors"
	"fmt"
	"strings"

	"znkr.io/docsim/internal/byteview"
)

// ErrInvalidInput is returned if the input of [Parse] is not valid UTF-8 text.
var ErrInvalidInput = errors.New("invalid input")

// Line is a single line of a document without the line terminator.
type Line struct {
	No   int    // 0-based line number in the source document.
	Text string // Line content.
}

// Document is an immutable sequence of lines.
type Document struct {
	lines          []Line
	missingNewline bool
}

// Parse splits data into lines. Lines are terminated by "\n" or "\r\n". A terminator at the end of
// data does not start another line, i.e. "a\n" and "a" both have one line. Use
// [Document.MissingNewline] to tell them apart.
//
// Parse returns an error wrapping [ErrInvalidInput] if data is not valid UTF-8.
func Parse[T string | []byte](data T) (Document, error) {
	v := byteview.From(data)
	if ok, offset := v.Valid(); !ok {
		return Document{}, fmt.Errorf("%w: invalid UTF-8 at byte offset %d", ErrInvalidInput, offset)
	}
	views, missing := byteview.SplitLines(v)
	lines := make([]Line, len(views))
	for i, l := range views {
		// Copy the text, data might be a []byte that's modified by the caller.
		lines[i] = Line{No: i, Text: strings.Clone(l.TrimEOL().String())}
	}
	return Document{lines: lines, missingNewline: missing >= 0}, nil
}

// ParseString is [Parse] for strings.
func ParseString(s string) (Document, error) {
	return Parse(s)
}

// FromLines creates a document from lines that were already split.
func FromLines(texts []string) Document {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{No: i, Text: text}
	}
	return Document{lines: lines}
}

// Len returns the number of lines.
func (d Document) Len() int { return len(d.lines) }

// Line returns the i-th line of the document.
func (d Document) Line(i int) Line { return d.lines[i] }

// Lines returns a copy of all lines.
func (d Document) Lines() []Line {
	return append([]Line(nil), d.lines...)
}

// Texts returns the text of all lines.
func (d Document) Texts() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.Text
	}
	return out
}

// Slice returns the sub-document with lines [from, to). Line numbers are retained.
func (d Document) Slice(from, to int) Document {
	sub := Document{lines: d.lines[from:to:to]}
	if to == len(d.lines) {
		sub.missingNewline = d.missingNewline
	}
	return sub
}

// Offset returns the line number of the first line in the source document. It's 0 for an empty
// document.
func (d Document) Offset() int {
	if len(d.lines) == 0 {
		return 0
	}
	return d.lines[0].No
}

// MissingNewline reports whether the last line was not terminated by a newline.
func (d Document) MissingNewline() bool { return d.missingNewline }

// String returns the text of the document. Every line is terminated by "\n", unless the last line
// is missing a newline.
func (d Document) String() string {
	var sb strings.Builder
	for i, l := range d.lines {
		sb.WriteString(l.Text)
		if i < len(d.lines)-1 || !d.missingNewline {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
