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

// Package report compares a candidate transcription of a document with a reference
// transcription and summarizes how similar they are.
//
// [Compare] is the main entry point. It computes the line ratio of the whole documents, a ratio
// for every pair of sections, and a classified listing of all differences. Everything is
// computed from the two documents and the [Config], there's no other state.
package report

import (
	"strings"

	"znkr.io/docsim"
	"znkr.io/docsim/classify"
	"znkr.io/docsim/markdown"
)

// Range is a half-open range of line numbers in the source document.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of lines in the range.
func (r Range) Len() int { return r.End - r.Start }

// Pairing describes how a section was matched with a section in the other document.
type Pairing string

const (
	ByTitle    Pairing = "by-title"   // Same title in both documents.
	Positional Pairing = "positional" // Same position between two sections paired by title.
	Unmatched  Pairing = "unmatched"  // Only present in one document.
)

// Side identifies one of the compared documents.
type Side string

const (
	Reference Side = "reference"
	Candidate Side = "candidate"
)

// SectionScore is the similarity of a pair of sections. For unmatched sections, the range of the
// missing side is empty and the ratio is 0.
type SectionScore struct {
	Title  string  `json:"title" yaml:"title"`
	Ratio  float64 `json:"ratio" yaml:"ratio"`
	RangeA Range   `json:"range_a" yaml:"range_a"`
	RangeB Range   `json:"range_b" yaml:"range_b"`
	Paired Pairing `json:"paired" yaml:"paired"`
}

// UnmatchedSection is a section that only exists in one document.
type UnmatchedSection struct {
	Title string `json:"title" yaml:"title"`
	Side  Side   `json:"side" yaml:"side"`
}

// ClassifiedHunk is a non-equal hunk of the line diff together with its bucket.
type ClassifiedHunk struct {
	Tag    docsim.Tag      `json:"tag" yaml:"tag"`
	RangeA Range           `json:"range_a" yaml:"range_a"`
	RangeB Range           `json:"range_b" yaml:"range_b"`
	A      []string        `json:"a,omitempty" yaml:"a,omitempty"`
	B      []string        `json:"b,omitempty" yaml:"b,omitempty"`
	Bucket classify.Bucket `json:"bucket" yaml:"bucket"`
}

// LineTally counts the lines of a bucket that are only in the reference (missing) or only in the
// candidate (extra).
type LineTally struct {
	Missing int `json:"missing" yaml:"missing"`
	Extra   int `json:"extra" yaml:"extra"`
}

// Confidence flags results that rest on fallbacks.
type Confidence struct {
	// Sectioning was requested, but at least one document has no heading of the requested level.
	SectionsFallback bool `json:"sections_fallback,omitempty" yaml:"sections_fallback,omitempty"`

	// A region marker was not found in at least one document.
	RegionStartMissing bool `json:"region_start_missing,omitempty" yaml:"region_start_missing,omitempty"`
	RegionEndMissing   bool `json:"region_end_missing,omitempty" yaml:"region_end_missing,omitempty"`

	// The alignment ran out of budget, the ratio is a lower bound.
	AlignmentPartial bool `json:"alignment_partial,omitempty" yaml:"alignment_partial,omitempty"`
}

// Reduced reports whether any flag is set.
func (c Confidence) Reduced() bool {
	return c.SectionsFallback || c.RegionStartMissing || c.RegionEndMissing || c.AlignmentPartial
}

// RegionReport describes the regions that were compared.
type RegionReport struct {
	StartMarker string `json:"start_marker" yaml:"start_marker"`
	EndMarker   string `json:"end_marker" yaml:"end_marker"`

	A RegionBounds `json:"a" yaml:"a"`
	B RegionBounds `json:"b" yaml:"b"`

	// Number of line positions within the common length of both regions that hold different text.
	PositionalMismatches int `json:"positional_mismatches" yaml:"positional_mismatches"`
}

// RegionBounds is the location of a region in its document.
type RegionBounds struct {
	Range      `yaml:",inline"`
	StartFound bool `json:"start_found" yaml:"start_found"`
	EndFound   bool `json:"end_found" yaml:"end_found"`
}

// Report is the result of comparing a candidate document with a reference document.
type Report struct {
	// Names of the compared documents, for display only. Set by the caller.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
	Candidate string `json:"candidate,omitempty" yaml:"candidate,omitempty"`

	// Similarity of the full line sequences.
	OverallRatio float64 `json:"overall_ratio" yaml:"overall_ratio"`
	LenA         int     `json:"len_a" yaml:"len_a"`
	LenB         int     `json:"len_b" yaml:"len_b"`

	// Character level similarity and edit distance, only computed if Config.CharLevel is set.
	CharRatio    *float64 `json:"char_ratio,omitempty" yaml:"char_ratio,omitempty"`
	CharDistance int      `json:"char_distance,omitempty" yaml:"char_distance,omitempty"`

	// Target ratio and whether it was reached. Shortfall is Target-OverallRatio if it wasn't.
	Target    float64 `json:"target,omitempty" yaml:"target,omitempty"`
	Passed    bool    `json:"passed" yaml:"passed"`
	Shortfall float64 `json:"shortfall,omitempty" yaml:"shortfall,omitempty"`

	Sections  []SectionScore     `json:"sections,omitempty" yaml:"sections,omitempty"`
	Unmatched []UnmatchedSection `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`

	// Differences within the first Window lines.
	Window  int                           `json:"window,omitempty" yaml:"window,omitempty"`
	Hunks   []ClassifiedHunk              `json:"hunks,omitempty" yaml:"hunks,omitempty"`
	Buckets map[classify.Bucket]int       `json:"buckets" yaml:"buckets"`
	Lines   map[classify.Bucket]LineTally `json:"lines" yaml:"lines"`

	Region     *RegionReport `json:"region,omitempty" yaml:"region,omitempty"`
	Confidence Confidence    `json:"confidence" yaml:"confidence"`
}

// UnmatchedTitles returns the titles of unmatched sections on the given side.
func (r *Report) UnmatchedTitles(side Side) []string {
	var out []string
	for _, u := range r.Unmatched {
		if u.Side == side {
			out = append(out, u.Title)
		}
	}
	return out
}

// Compare compares candidate with reference. It never modifies the documents, comparing the same
// documents with the same config always returns the same report.
//
// The config is expected to be valid, see [Config.Validate]. Invalid normalizations are ignored
// and an invalid heading pattern falls back to ATX headings.
func Compare(reference, candidate markdown.Document, cfg Config) *Report {
	opts := cfg.options()
	r := &Report{
		Target:  cfg.Target,
		Window:  cfg.Window,
		Buckets: make(map[classify.Bucket]int),
		Lines:   make(map[classify.Bucket]LineTally),
	}

	if flags := cfg.normalizeFlags(); flags != 0 {
		reference = markdown.Normalize(reference, flags)
		candidate = markdown.Normalize(candidate, flags)
	}

	if cfg.Region.Enabled() {
		reference, candidate = compareRegions(r, reference, candidate, cfg.Region)
	}

	a, b := reference.Texts(), candidate.Texts()
	// The ratio, the partial flag and the hunks all describe the same alignment.
	al := docsim.AlignSymmetric(a, b, opts...)
	r.OverallRatio = al.Ratio()
	r.LenA, r.LenB = len(a), len(b)
	r.Confidence.AlignmentPartial = al.Partial

	if cfg.Target > 0 {
		r.Passed = r.OverallRatio >= cfg.Target
		if !r.Passed {
			r.Shortfall = cfg.Target - r.OverallRatio
		}
	} else {
		r.Passed = true
	}

	if cfg.CharLevel {
		ratio, dist := charRatio(reference.String(), candidate.String(), cfg.CharTimeout)
		r.CharRatio, r.CharDistance = &ratio, dist
	}

	if cfg.SectionLevel > 0 {
		pat, err := cfg.headingPattern()
		if err != nil {
			pat = markdown.ATX
		}
		compareSections(r, reference, candidate, pat, cfg.SectionLevel, opts)
	}

	if cfg.Window > 0 {
		al = docsim.AlignSymmetric(a, b, append(opts, docsim.Window(cfg.Window))...)
	}
	classifier := cfg.classifier()
	for _, h := range docsim.Hunks(a, b, al) {
		bucket := classifier.Classify(h)
		if bucket == classify.Equal {
			continue
		}
		r.Hunks = append(r.Hunks, ClassifiedHunk{
			Tag:    h.Tag,
			RangeA: lineRange(reference, h.PosA, h.EndA),
			RangeB: lineRange(candidate, h.PosB, h.EndB),
			A:      h.A,
			B:      h.B,
			Bucket: bucket,
		})
		r.Buckets[bucket]++
		tally := r.Lines[bucket]
		tally.Missing += len(h.A)
		tally.Extra += len(h.B)
		r.Lines[bucket] = tally
	}
	return r
}

func compareRegions(r *Report, reference, candidate markdown.Document, rc RegionConfig) (markdown.Document, markdown.Document) {
	ra := markdown.ExtractRegion(reference, rc.Start, rc.End)
	rb := markdown.ExtractRegion(candidate, rc.Start, rc.End)
	r.Region = &RegionReport{
		StartMarker:          rc.Start,
		EndMarker:            rc.End,
		A:                    regionBounds(reference, ra),
		B:                    regionBounds(candidate, rb),
		PositionalMismatches: positionalMismatches(ra.Document, rb.Document),
	}
	if rc.Start != "" && (!ra.StartFound || !rb.StartFound) {
		r.Confidence.RegionStartMissing = true
	}
	if rc.End != "" && (!ra.EndFound || !rb.EndFound) {
		r.Confidence.RegionEndMissing = true
	}
	return ra.Document, rb.Document
}

func regionBounds(doc markdown.Document, reg markdown.Region) RegionBounds {
	return RegionBounds{
		Range:      lineRange(doc, reg.Start, reg.End),
		StartFound: reg.StartFound,
		EndFound:   reg.EndFound,
	}
}

func positionalMismatches(a, b markdown.Document) int {
	var n int
	for i := range min(a.Len(), b.Len()) {
		if a.Line(i).Text != b.Line(i).Text {
			n++
		}
	}
	return n
}

// lineRange translates the index range [from, to) of doc into source line numbers.
func lineRange(doc markdown.Document, from, to int) Range {
	if from == to {
		// Empty ranges are anchored before the line at from.
		var no int
		switch {
		case from < doc.Len():
			no = doc.Line(from).No
		case doc.Len() > 0:
			no = doc.Line(doc.Len()-1).No + 1
		}
		return Range{no, no}
	}
	return Range{doc.Line(from).No, doc.Line(to-1).No + 1}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
