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

// Section is a contiguous range of lines [Start, End) of a document. Sections returned by [Segment]
// start with their heading line, except for the untitled section before the first heading.
type Section struct {
	Title string // Heading title, empty for content before the first heading.
	Level int    // Heading level, 0 for an untitled section.
	Start int    // Index of the first line.
	End   int    // Index after the last line.
}

// Len returns the number of lines in the section.
func (s Section) Len() int { return s.End - s.Start }

// Untitled reports whether the section does not start with a heading.
func (s Section) Untitled() bool { return s.Level == 0 }

// Of returns the lines of the section as a sub-document of doc.
func (s Section) Of(doc Document) Document {
	return doc.Slice(s.Start, s.End)
}

// Segment splits doc into sections. Only headings of the given level start a section, deeper and
// shallower headings are part of the section content.
//
// The sections are ordered, don't overlap and cover the whole document:
//
//   - Lines before the first heading become an untitled section if at least one of them isn't
//     blank. Otherwise they are added to the first section.
//   - If no line is a heading of the given level, the result is a single untitled section.
//   - An empty document has no sections.
func Segment(doc Document, pat HeadingPattern, level int) []Section {
	if doc.Len() == 0 {
		return nil
	}
	var sections []Section
	preamble := false // true if there's non-blank content before the first heading
	for i, l := range doc.lines {
		h, ok := pat.Match(l.Text)
		if !ok || h.Level != level {
			if len(sections) == 0 && !isBlank(l.Text) {
				preamble = true
			}
			continue
		}
		if len(sections) == 0 {
			start := 0
			if preamble {
				sections = append(sections, Section{Start: 0, End: i})
				start = i
			}
			sections = append(sections, Section{Title: h.Title, Level: h.Level, Start: start})
			continue
		}
		sections[len(sections)-1].End = i
		sections = append(sections, Section{Title: h.Title, Level: h.Level, Start: i})
	}
	if len(sections) == 0 {
		return []Section{{Start: 0, End: doc.Len()}}
	}
	sections[len(sections)-1].End = doc.Len()
	return sections
}

// Titles returns the titles of the sections.
func Titles(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}
