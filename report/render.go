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
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"znkr.io/docsim/markdown"
)

// WriteText writes a human readable summary of r to w.
func WriteText(w io.Writer, r *Report) error {
	ew := &errWriter{w: w}
	if r.Reference != "" || r.Candidate != "" {
		ew.printf("reference: %s\n", r.Reference)
		ew.printf("candidate: %s\n", r.Candidate)
	}
	ew.printf("similarity: %s (%d vs %d lines)\n", percent(r.OverallRatio), r.LenA, r.LenB)
	if r.Target > 0 {
		if r.Passed {
			ew.printf("target: %s PASS\n", percent(r.Target))
		} else {
			ew.printf("target: %s NEEDS WORK (%.1f points short)\n", percent(r.Target), 100*r.Shortfall)
		}
	}
	if r.CharRatio != nil {
		ew.printf("characters: %s (distance %d)\n", percent(*r.CharRatio), r.CharDistance)
	}
	if reg := r.Region; reg != nil {
		ew.printf("region: %q to %q\n", reg.StartMarker, reg.EndMarker)
		ew.printf("  reference: %s\n", bounds(reg.A))
		ew.printf("  candidate: %s\n", bounds(reg.B))
		ew.printf("  positional mismatches: %d\n", reg.PositionalMismatches)
	}

	if len(r.Sections) > 0 {
		ew.printf("\nsections:\n")
		tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
		for _, s := range r.Sections {
			fmt.Fprintf(tw, "  %s\t%s\t%s\treference %s\tcandidate %s\n", percent(s.Ratio), s.Paired, title(s.Title), lines(s.RangeA), lines(s.RangeB))
		}
		tw.Flush()
	}
	if len(r.Unmatched) > 0 {
		ew.printf("\nunmatched:\n")
		for _, u := range r.Unmatched {
			ew.printf("  %s: %s\n", u.Side, title(u.Title))
		}
	}

	if len(r.Buckets) > 0 {
		ew.printf("\nchanges:\n")
		tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
		for _, b := range slices.Sorted(maps.Keys(r.Buckets)) {
			t := r.Lines[b]
			fmt.Fprintf(tw, "  %s\t%d hunks\t%d missing\t%d extra\n", b, r.Buckets[b], t.Missing, t.Extra)
		}
		tw.Flush()
	}
	for _, h := range r.Hunks {
		ew.printf("\n@@ -%d,%d +%d,%d @@ %s %s\n", h.RangeA.Start+1, h.RangeA.Len(), h.RangeB.Start+1, h.RangeB.Len(), h.Tag, h.Bucket)
		for _, l := range h.A {
			ew.printf("-%s\n", l)
		}
		for _, l := range h.B {
			ew.printf("+%s\n", l)
		}
	}

	if c := r.Confidence; c.Reduced() {
		var flags []string
		for _, f := range []struct {
			set  bool
			name string
		}{
			{c.SectionsFallback, "no section headings"},
			{c.RegionStartMissing, "region start not found"},
			{c.RegionEndMissing, "region end not found"},
			{c.AlignmentPartial, "alignment budget exhausted"},
		} {
			if f.set {
				flags = append(flags, f.name)
			}
		}
		ew.printf("\nreduced confidence: %s\n", strings.Join(flags, ", "))
	}
	return ew.err
}

// WritePreview writes the first n lines of both documents with their line numbers.
func WritePreview(w io.Writer, reference, candidate markdown.Document, n int) error {
	ew := &errWriter{w: w}
	for i, doc := range []markdown.Document{reference, candidate} {
		if i > 0 {
			ew.printf("\n")
		}
		ew.printf("%s (%d lines):\n", []Side{Reference, Candidate}[i], doc.Len())
		for _, l := range doc.Slice(0, min(n, doc.Len())).Lines() {
			ew.printf("%5d | %s\n", l.No+1, l.Text)
		}
	}
	return ew.err
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", 100*ratio)
}

func title(t string) string {
	if t == "" {
		return "(untitled)"
	}
	return t
}

func lines(r Range) string {
	if r.Len() == 0 {
		return "-"
	}
	return fmt.Sprintf("%d-%d", r.Start+1, r.End)
}

func bounds(b RegionBounds) string {
	s := "lines " + lines(b.Range)
	if !b.StartFound {
		s += ", start not found"
	}
	if !b.EndFound {
		s += ", end not found"
	}
	return s
}

// errWriter remembers the first error and drops all output after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(ew, format, args...)
}
