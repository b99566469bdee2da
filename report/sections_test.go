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
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/docsim/markdown"
)

func TestPairSections(t *testing.T) {
	// sections builds sections from titles, "" is an untitled section.
	sections := func(titles ...string) []markdown.Section {
		out := make([]markdown.Section, len(titles))
		for i, title := range titles {
			out[i] = markdown.Section{Title: title, Start: i, End: i + 1}
			if title != "" {
				out[i].Level = 2
			}
		}
		return out
	}

	tests := []struct {
		name string
		a, b []markdown.Section
		want []pair
	}{
		{
			name: "empty",
			want: []pair{},
		},
		{
			name: "same-titles",
			a:    sections("A", "B"),
			b:    sections("A", "B"),
			want: []pair{{0, 0, ByTitle}, {1, 1, ByTitle}},
		},
		{
			name: "reordered",
			a:    sections("A", "B"),
			b:    sections("B", "A"),
			want: []pair{{0, 1, ByTitle}, {1, 0, ByTitle}},
		},
		{
			name: "missing-in-b",
			a:    sections("S1", "S2", "S3"),
			b:    sections("S1", "S3"),
			want: []pair{{0, 0, ByTitle}, {1, -1, Unmatched}, {2, 1, ByTitle}},
		},
		{
			name: "extra-in-b",
			a:    sections("S1", "S3"),
			b:    sections("S1", "S2", "S3"),
			want: []pair{{0, 0, ByTitle}, {1, 2, ByTitle}, {-1, 1, Unmatched}},
		},
		{
			name: "renamed",
			a:    sections("Intro", "Methods", "End"),
			b:    sections("Intro", "Method", "End"),
			want: []pair{{0, 0, ByTitle}, {1, 1, Positional}, {2, 2, ByTitle}},
		},
		{
			name: "renamed-at-end",
			a:    sections("Intro", "Summary"),
			b:    sections("Intro", "Conclusion"),
			want: []pair{{0, 0, ByTitle}, {1, 1, Positional}},
		},
		{
			name: "duplicate-titles",
			a:    sections("Notes", "Notes", "Notes"),
			b:    sections("Notes", "Notes"),
			want: []pair{{0, 0, ByTitle}, {1, 1, ByTitle}, {2, -1, Unmatched}},
		},
		{
			name: "preambles",
			a:    sections("", "A"),
			b:    sections("", "A"),
			want: []pair{{0, 0, ByTitle}, {1, 1, ByTitle}},
		},
		{
			name: "lost-heading",
			a:    sections("Abstract", "Intro"),
			b:    sections("", "Intro"),
			want: []pair{{0, -1, Unmatched}, {1, 1, ByTitle}, {-1, 0, Unmatched}},
		},
		{
			name: "untitled-never-pairs-titled",
			a:    sections("", "A"),
			b:    sections("B"),
			want: []pair{{0, -1, Unmatched}, {1, 0, Positional}},
		},
		{
			name: "crossing-titles-are-not-anchors",
			a:    sections("A", "x", "B", "y"),
			b:    sections("B", "z", "A", "w"),
			want: []pair{{0, 2, ByTitle}, {1, 3, Positional}, {2, 0, ByTitle}, {3, -1, Unmatched}, {-1, 1, Unmatched}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairSections(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(pair{})); diff != "" {
				t.Errorf("pairSections(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

// Every section appears exactly once in the result.
func TestPairSectionsCoversAll(t *testing.T) {
	a := []markdown.Section{{Title: "A", Level: 1}, {Title: "B", Level: 1}, {}, {Title: "C", Level: 1}}
	b := []markdown.Section{{}, {Title: "C", Level: 1}, {Title: "X", Level: 1}, {Title: "A", Level: 1}, {}}
	seenA := make(map[int]int)
	seenB := make(map[int]int)
	for _, p := range pairSections(a, b) {
		if p.a >= 0 {
			seenA[p.a]++
		}
		if p.b >= 0 {
			seenB[p.b]++
		}
		if (p.a < 0 || p.b < 0) != (p.how == Unmatched) {
			t.Errorf("pair %+v has inconsistent pairing", p)
		}
	}
	for i := range a {
		if seenA[i] != 1 {
			t.Errorf("section %d of a appears %d times", i, seenA[i])
		}
	}
	for j := range b {
		if seenB[j] != 1 {
			t.Errorf("section %d of b appears %d times", j, seenB[j])
		}
	}
}
