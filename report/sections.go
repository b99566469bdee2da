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
	"znkr.io/docsim"
	"znkr.io/docsim/markdown"
)

// pair is a pair of section indices, -1 if the section has no partner.
type pair struct {
	a, b int
	how  Pairing
}

// pairSections pairs the sections of two documents. Sections are paired by title first: Every
// section is paired with the first section of the other document that has the same title and is
// still unpaired. Untitled sections pair with untitled sections.
//
// The remaining sections are paired by position: The title pairs that are in the same order in
// both documents act as anchors, and unpaired sections between the same two anchors are paired
// in order. Titled sections are never paired with untitled ones, a section that lost its heading
// is not the same section anymore.
//
// The result is ordered by the position in a, sections only present in b come last.
func pairSections(a, b []markdown.Section) []pair {
	pa := make([]int, len(a)) // partner in b
	pb := make([]int, len(b)) // partner in a
	how := make([]Pairing, len(a))
	for i := range pa {
		pa[i] = -1
	}
	for j := range pb {
		pb[j] = -1
	}

	for i, s := range a {
		for j, t := range b {
			if pb[j] < 0 && s.Title == t.Title && s.Untitled() == t.Untitled() {
				pa[i], pb[j], how[i] = j, i, ByTitle
				break
			}
		}
	}

	// Anchors are title pairs with increasing positions in both documents.
	type anchor struct{ a, b int }
	anchors := []anchor{{-1, -1}}
	for i, j := range pa {
		if j >= 0 && j > anchors[len(anchors)-1].b {
			anchors = append(anchors, anchor{i, j})
		}
	}
	anchors = append(anchors, anchor{len(a), len(b)})

	for k := 1; k < len(anchors); k++ {
		lo, hi := anchors[k-1], anchors[k]
		j := lo.b + 1
		for i := lo.a + 1; i < hi.a; i++ {
			if pa[i] >= 0 {
				continue
			}
			for ; j < hi.b; j++ {
				if pb[j] >= 0 || b[j].Untitled() && !a[i].Untitled() {
					continue
				}
				if a[i].Untitled() == b[j].Untitled() {
					pa[i], pb[j], how[i] = j, i, Positional
					j++
				}
				break
			}
		}
	}

	out := make([]pair, 0, len(a)+len(b))
	for i, j := range pa {
		if j < 0 {
			out = append(out, pair{i, -1, Unmatched})
		} else {
			out = append(out, pair{i, j, how[i]})
		}
	}
	for j, i := range pb {
		if i < 0 {
			out = append(out, pair{-1, j, Unmatched})
		}
	}
	return out
}

func compareSections(r *Report, reference, candidate markdown.Document, pat markdown.HeadingPattern, level int, opts []docsim.Option) {
	sa := markdown.Segment(reference, pat, level)
	sb := markdown.Segment(candidate, pat, level)
	if fallback(sa) || fallback(sb) {
		r.Confidence.SectionsFallback = true
	}

	for _, p := range pairSections(sa, sb) {
		var score SectionScore
		var da, db markdown.Document
		if p.a >= 0 {
			s := sa[p.a]
			score.Title = s.Title
			score.RangeA = lineRange(reference, s.Start, s.End)
			da = s.Of(reference)
		}
		if p.b >= 0 {
			s := sb[p.b]
			if p.a < 0 {
				score.Title = s.Title
			}
			score.RangeB = lineRange(candidate, s.Start, s.End)
			db = s.Of(candidate)
		}
		score.Paired = p.how
		switch {
		case p.a < 0:
			r.Unmatched = append(r.Unmatched, UnmatchedSection{Title: score.Title, Side: Candidate})
		case p.b < 0:
			r.Unmatched = append(r.Unmatched, UnmatchedSection{Title: score.Title, Side: Reference})
		default:
			score.Ratio = docsim.Ratio(da.Texts(), db.Texts(), opts...)
		}
		r.Sections = append(r.Sections, score)
	}
}

// fallback reports whether the sections are the result of not finding any heading.
func fallback(sections []markdown.Section) bool {
	return len(sections) == 1 && sections[0].Untitled()
}
