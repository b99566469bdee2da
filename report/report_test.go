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
	"flag"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/tools/txtar"
	"znkr.io/docsim"
	"znkr.io/docsim/classify"
	"znkr.io/docsim/markdown"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden compares the reference and candidate of every test file and checks the text report.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("failed to read testdata: %v", err)
	}
	for _, filename := range files {
		t.Run(strings.TrimSuffix(filepath.Base(filename), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(filename)
			if err != nil {
				t.Fatalf("failed to parse test case: %v", err)
			}
			sections := make(map[string][]byte)
			for _, f := range ar.Files {
				sections[f.Name] = f.Data
			}

			cfgPath := filepath.Join(t.TempDir(), "docsim.yaml")
			if err := os.WriteFile(cfgPath, sections["config"], 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfig(cfgPath)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}

			r := Compare(mustParse(t, string(sections["reference"])), mustParse(t, string(sections["candidate"])), cfg)
			var buf bytes.Buffer
			if err := WriteText(&buf, r); err != nil {
				t.Fatalf("WriteText: %v", err)
			}
			got := buf.Bytes()

			if *update {
				for i, f := range ar.Files {
					if f.Name == "text" {
						ar.Files[i].Data = got
					}
				}
				if err := os.WriteFile(filename, txtar.Format(ar), 0o644); err != nil {
					t.Fatalf("error writing golden file: %v", err)
				}
				return
			}
			if diff := cmp.Diff(string(sections["text"]), string(got)); diff != "" {
				t.Errorf("WriteText(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		ref, cand  string
		cfg        Config
		wantRatio  float64
		wantHunks  []ClassifiedHunk
		wantBucket map[classify.Bucket]int
		wantLines  map[classify.Bucket]LineTally
	}{
		{
			name:       "identical",
			ref:        "# Title\n\nBody text.\n",
			cand:       "# Title\n\nBody text.\n",
			wantRatio:  1,
			wantBucket: map[classify.Bucket]int{},
			wantLines:  map[classify.Bucket]LineTally{},
		},
		{
			name:      "extra-line",
			ref:       "# Title\n\nBody text.\n\n",
			cand:      "# Title\n\nBody text.\n\nExtra line\n",
			wantRatio: 8.0 / 9,
			wantHunks: []ClassifiedHunk{
				{Tag: docsim.Insert, RangeA: Range{4, 4}, RangeB: Range{4, 5}, B: []string{"Extra line"}, Bucket: classify.GenericText},
			},
			wantBucket: map[classify.Bucket]int{classify.GenericText: 1},
			wantLines:  map[classify.Bucket]LineTally{classify.GenericText: {Missing: 0, Extra: 1}},
		},
		{
			name:      "disjoint",
			ref:       "a\nb\n",
			cand:      "c\n",
			wantRatio: 0,
			wantHunks: []ClassifiedHunk{
				{Tag: docsim.Replace, RangeA: Range{0, 2}, RangeB: Range{0, 1}, A: []string{"a", "b"}, B: []string{"c"}, Bucket: classify.GenericText},
			},
			wantBucket: map[classify.Bucket]int{classify.GenericText: 1},
			wantLines:  map[classify.Bucket]LineTally{classify.GenericText: {Missing: 2, Extra: 1}},
		},
		{
			name:      "blank-lines",
			ref:       "a\n\nb\n",
			cand:      "a\nb\n",
			wantRatio: 0.8,
			wantHunks: []ClassifiedHunk{
				{Tag: docsim.Delete, RangeA: Range{1, 2}, RangeB: Range{1, 1}, A: []string{""}, Bucket: classify.Blank},
			},
			wantBucket: map[classify.Bucket]int{classify.Blank: 1},
			wantLines:  map[classify.Bucket]LineTally{classify.Blank: {Missing: 1}},
		},
		{
			name:       "normalized-whitespace",
			ref:        "a  b\nc\n",
			cand:       "a b \nc\n\n\n",
			cfg:        Config{Normalize: []string{"whitespace"}},
			wantRatio:  1,
			wantBucket: map[classify.Bucket]int{},
			wantLines:  map[classify.Bucket]LineTally{},
		},
		{
			name:       "window",
			ref:        "a\nb\nc\nd\n",
			cand:       "a\nb\nc\nx\n",
			cfg:        Config{Window: 3},
			wantRatio:  0.75,
			wantBucket: map[classify.Bucket]int{},
			wantLines:  map[classify.Bucket]LineTally{},
		},
		{
			name:       "empty-documents",
			wantRatio:  1,
			wantBucket: map[classify.Bucket]int{},
			wantLines:  map[classify.Bucket]LineTally{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compare(mustParse(t, tt.ref), mustParse(t, tt.cand), tt.cfg)
			if r.OverallRatio != tt.wantRatio {
				t.Errorf("OverallRatio = %v, want %v", r.OverallRatio, tt.wantRatio)
			}
			if diff := cmp.Diff(tt.wantHunks, r.Hunks, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Hunks are different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantBucket, r.Buckets); diff != "" {
				t.Errorf("Buckets are different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantLines, r.Lines); diff != "" {
				t.Errorf("Lines are different [-want,+got]:\n%s", diff)
			}
			if !r.Passed {
				t.Errorf("Passed = false without a target")
			}
		})
	}
}

func TestCompareTarget(t *testing.T) {
	ref := mustParse(t, "# Title\n\nBody text.\n\n")
	cand := mustParse(t, "# Title\n\nBody text.\n\nExtra line\n")

	r := Compare(ref, cand, Config{Target: 0.95})
	if r.Passed {
		t.Errorf("Passed = true, want false for ratio %v", r.OverallRatio)
	}
	if got, want := r.Shortfall, 0.95-8.0/9; math.Abs(got-want) > 1e-12 {
		t.Errorf("Shortfall = %v, want %v", got, want)
	}

	r = Compare(ref, cand, Config{Target: 0.85})
	if !r.Passed || r.Shortfall != 0 {
		t.Errorf("Passed, Shortfall = %v, %v, want true, 0", r.Passed, r.Shortfall)
	}
}

func TestCompareSections(t *testing.T) {
	tests := []struct {
		name          string
		ref, cand     string
		cfg           Config
		want          []SectionScore
		wantUnmatched []UnmatchedSection
		wantFallback  bool
	}{
		{
			name: "missing-section",
			ref:  "## S1\na\n## S2\nb\n## S3\nc\n",
			cand: "## S1\na\n## S3\nc\n",
			cfg:  Config{SectionLevel: 2},
			want: []SectionScore{
				{Title: "S1", Ratio: 1, RangeA: Range{0, 2}, RangeB: Range{0, 2}, Paired: ByTitle},
				{Title: "S2", Ratio: 0, RangeA: Range{2, 4}, Paired: Unmatched},
				{Title: "S3", Ratio: 1, RangeA: Range{4, 6}, RangeB: Range{2, 4}, Paired: ByTitle},
			},
			wantUnmatched: []UnmatchedSection{{Title: "S2", Side: Reference}},
		},
		{
			name: "renamed-section",
			ref:  "## Intro\nx\n## Methods\ny\n## End\nz\n",
			cand: "## Intro\nx\n## Method\ny\n## End\nz\n",
			cfg:  Config{SectionLevel: 2},
			want: []SectionScore{
				{Title: "Intro", Ratio: 1, RangeA: Range{0, 2}, RangeB: Range{0, 2}, Paired: ByTitle},
				{Title: "Methods", Ratio: 0.5, RangeA: Range{2, 4}, RangeB: Range{2, 4}, Paired: Positional},
				{Title: "End", Ratio: 1, RangeA: Range{4, 6}, RangeB: Range{4, 6}, Paired: ByTitle},
			},
		},
		{
			name: "demoted-heading",
			ref:  "## Abstract\nWe study things.\n## 1 Introduction\nIntro text.\n",
			cand: "Abstract\nWe study things.\n## 1 Introduction\nIntro text.\n",
			cfg:  Config{SectionLevel: 2, HeadingPrefix: "## "},
			want: []SectionScore{
				{Title: "Abstract", Ratio: 0, RangeA: Range{0, 2}, Paired: Unmatched},
				{Title: "1 Introduction", Ratio: 1, RangeA: Range{2, 4}, RangeB: Range{2, 4}, Paired: ByTitle},
				{Title: "", Ratio: 0, RangeB: Range{0, 2}, Paired: Unmatched},
			},
			wantUnmatched: []UnmatchedSection{
				{Title: "Abstract", Side: Reference},
				{Title: "", Side: Candidate},
			},
		},
		{
			name: "no-headings",
			ref:  "a\nb\n",
			cand: "a\nc\n",
			cfg:  Config{SectionLevel: 1},
			want: []SectionScore{
				{Title: "", Ratio: 0.5, RangeA: Range{0, 2}, RangeB: Range{0, 2}, Paired: ByTitle},
			},
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compare(mustParse(t, tt.ref), mustParse(t, tt.cand), tt.cfg)
			if diff := cmp.Diff(tt.want, r.Sections); diff != "" {
				t.Errorf("Sections are different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantUnmatched, r.Unmatched); diff != "" {
				t.Errorf("Unmatched is different [-want,+got]:\n%s", diff)
			}
			if got := r.Confidence.SectionsFallback; got != tt.wantFallback {
				t.Errorf("SectionsFallback = %v, want %v", got, tt.wantFallback)
			}
		})
	}
}

// A demoted heading is reported as a heading change in the line diff.
func TestCompareDemotedHeading(t *testing.T) {
	ref := mustParse(t, "## Abstract\nWe study things.\n## 1 Introduction\nIntro text.\n")
	cand := mustParse(t, "Abstract\nWe study things.\n## 1 Introduction\nIntro text.\n")
	r := Compare(ref, cand, Config{SectionLevel: 2, HeadingPrefix: "## "})

	if got := r.Buckets[classify.Heading]; got < 1 {
		t.Errorf("Buckets[%s] = %d, want at least 1", classify.Heading, got)
	}
	if diff := cmp.Diff([]string{"Abstract"}, r.UnmatchedTitles(Reference)); diff != "" {
		t.Errorf("UnmatchedTitles(Reference) is different [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]string{""}, r.UnmatchedTitles(Candidate)); diff != "" {
		t.Errorf("UnmatchedTitles(Candidate) is different [-want,+got]:\n%s", diff)
	}
}

func TestCompareRegion(t *testing.T) {
	ref := mustParse(t, "# T\nJane\nUniv\n## Abstract\nx\n")
	cand := mustParse(t, "# T\nJane D\nUniv\n## Abstract\ny\n")

	tests := []struct {
		name           string
		region         RegionConfig
		want           *RegionReport
		wantRatio      float64
		wantConfidence Confidence
	}{
		{
			name:   "both-markers",
			region: RegionConfig{Start: "Jane", End: "## Abstract"},
			want: &RegionReport{
				StartMarker:          "Jane",
				EndMarker:            "## Abstract",
				A:                    RegionBounds{Range: Range{1, 3}, StartFound: true, EndFound: true},
				B:                    RegionBounds{Range: Range{1, 3}, StartFound: true, EndFound: true},
				PositionalMismatches: 1,
			},
			wantRatio: 0.5,
		},
		{
			name:   "missing-start",
			region: RegionConfig{Start: "Nope", End: "Univ"},
			want: &RegionReport{
				StartMarker:          "Nope",
				EndMarker:            "Univ",
				A:                    RegionBounds{Range: Range{0, 2}, EndFound: true},
				B:                    RegionBounds{Range: Range{0, 2}, EndFound: true},
				PositionalMismatches: 1,
			},
			wantRatio:      0.5,
			wantConfidence: Confidence{RegionStartMissing: true},
		},
		{
			name:   "start-only",
			region: RegionConfig{Start: "## Abstract"},
			want: &RegionReport{
				StartMarker:          "## Abstract",
				A:                    RegionBounds{Range: Range{3, 5}, StartFound: true},
				B:                    RegionBounds{Range: Range{3, 5}, StartFound: true},
				PositionalMismatches: 1,
			},
			wantRatio: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compare(ref, cand, Config{Region: tt.region})
			if diff := cmp.Diff(tt.want, r.Region); diff != "" {
				t.Errorf("Region is different [-want,+got]:\n%s", diff)
			}
			if r.OverallRatio != tt.wantRatio {
				t.Errorf("OverallRatio = %v, want %v", r.OverallRatio, tt.wantRatio)
			}
			if diff := cmp.Diff(tt.wantConfidence, r.Confidence); diff != "" {
				t.Errorf("Confidence is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestCompareBudget(t *testing.T) {
	ref := mustParse(t, "a\nb\nc\na\nb\nc\n")
	cand := mustParse(t, "a\nb\nc\na\nb\nc\n")
	r := Compare(ref, cand, Config{Budget: 1})
	if !r.Confidence.AlignmentPartial || !r.Confidence.Reduced() {
		t.Errorf("Confidence = %+v, want a partial alignment", r.Confidence)
	}
}

func TestCompareCharLevel(t *testing.T) {
	ref := mustParse(t, "abcd\n")
	cand := mustParse(t, "abce\n")
	r := Compare(ref, cand, Config{CharLevel: true})
	if r.CharRatio == nil {
		t.Fatal("CharRatio = nil, want a value")
	}
	if got, want := *r.CharRatio, 0.8; got != want {
		t.Errorf("CharRatio = %v, want %v", got, want)
	}
	if r.CharDistance != 1 {
		t.Errorf("CharDistance = %d, want 1", r.CharDistance)
	}

	r = Compare(ref, cand, Config{})
	if r.CharRatio != nil {
		t.Errorf("CharRatio = %v without CharLevel, want nil", *r.CharRatio)
	}
}

func TestCompareJunk(t *testing.T) {
	ref := mustParse(t, "\nalpha\n\nbeta\n")
	cand := mustParse(t, "\ngamma\n\ndelta\n")
	if got := Compare(ref, cand, Config{}).OverallRatio; got != 0.5 {
		t.Errorf("OverallRatio = %v, want 0.5", got)
	}
	if got := Compare(ref, cand, Config{JunkBlank: true}).OverallRatio; got != 0 {
		t.Errorf("OverallRatio with JunkBlank = %v, want 0", got)
	}
}

// Blank lines can't anchor a match, but identical blank lines are still identical.
func TestCompareJunkIdentical(t *testing.T) {
	tests := []struct {
		name string
		doc  markdown.Document
		cfg  Config
	}{
		{
			name: "blank-only",
			doc:  markdown.FromLines([]string{"", "  ", ""}),
			cfg:  Config{JunkBlank: true},
		},
		{
			name: "window-starts-with-blank",
			doc:  markdown.FromLines([]string{"", "alpha", "beta"}),
			cfg:  Config{JunkBlank: true, Window: 1},
		},
		{
			name: "blank-only-minimal",
			doc:  markdown.FromLines([]string{"", "", "\t"}),
			cfg:  Config{JunkBlank: true, Minimal: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compare(tt.doc, tt.doc, tt.cfg)
			if r.OverallRatio != 1 {
				t.Errorf("OverallRatio = %v, want 1", r.OverallRatio)
			}
			if len(r.Hunks) != 0 || len(r.Buckets) != 0 {
				t.Errorf("Compare(D, D) has changes: hunks %v, buckets %v", r.Hunks, r.Buckets)
			}
		})
	}
}

// The hunks describe the alignment the ratio is computed from, also when ties could be broken
// differently for the two argument orders.
func TestCompareHunksMatchRatio(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	randomDoc := func() markdown.Document {
		texts := make([]string, rng.IntN(12))
		for i := range texts {
			texts[i] = []string{"a", "b", "", "# c"}[rng.IntN(4)]
		}
		return markdown.FromLines(texts)
	}
	for range 300 {
		ref, cand := randomDoc(), randomDoc()
		for _, cfg := range []Config{{}, {Minimal: true}, {JunkBlank: true}} {
			r := Compare(ref, cand, cfg)
			missing, extra := 0, 0
			for _, tally := range r.Lines {
				missing += tally.Missing
				extra += tally.Extra
			}
			matched := r.LenA - missing
			if r.LenB-extra != matched {
				t.Fatalf("Compare(%q, %q): %d lines matched in the reference, %d in the candidate", ref.Texts(), cand.Texts(), matched, r.LenB-extra)
			}
			want := 1.0
			if r.LenA+r.LenB > 0 {
				want = 2 * float64(matched) / float64(r.LenA+r.LenB)
			}
			if r.OverallRatio != want {
				t.Fatalf("Compare(%q, %q).OverallRatio = %v, but the hunks match %d lines", ref.Texts(), cand.Texts(), r.OverallRatio, matched)
			}
			if got := Compare(cand, ref, cfg).OverallRatio; got != r.OverallRatio {
				t.Fatalf("Compare(%q, %q) ratio isn't symmetric: %v vs %v", ref.Texts(), cand.Texts(), r.OverallRatio, got)
			}
		}
	}
}

func TestCompareCustomClassifier(t *testing.T) {
	todo := classify.Rule{
		Bucket: "todo",
		Match: func(h docsim.Hunk[string]) bool {
			for _, l := range h.B {
				if strings.Contains(l, "TODO") {
					return true
				}
			}
			return false
		},
	}
	cfg := Config{Classifier: classify.Classifier{Rules: []classify.Rule{todo}, Fallback: "other"}}
	r := Compare(mustParse(t, "a\n"), mustParse(t, "a\nTODO\n\n"), cfg)
	want := map[classify.Bucket]int{"todo": 1}
	if diff := cmp.Diff(want, r.Buckets); diff != "" {
		t.Errorf("Buckets are different [-want,+got]:\n%s", diff)
	}
}

// Compare must not depend on anything but its inputs and must leave them untouched.
func TestComparePure(t *testing.T) {
	refText := "# Paper\n\n## Abstract\nWe study things.\n\n## Results\nIt works.\n"
	candText := "# Paper\n\nAbstract\nWe study  things.\n## Results\nIt works!\n"
	ref, cand := mustParse(t, refText), mustParse(t, candText)
	cfg := DefaultConfig()
	cfg.SectionLevel = 2
	cfg.CharLevel = true
	cfg.Normalize = []string{"collapse-spaces"}
	cfg.Region = RegionConfig{Start: "Abstract"}

	first := Compare(ref, cand, cfg)
	second := Compare(ref, cand, cfg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Compare is not deterministic [-first,+second]:\n%s", diff)
	}
	if ref.String() != refText || cand.String() != candText {
		t.Errorf("Compare modified its inputs")
	}
}

func mustParse(t testing.TB, s string) markdown.Document {
	t.Helper()
	doc, err := markdown.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", s, err)
	}
	return doc
}
