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
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/docsim/markdown"
)

func TestCompareAll(t *testing.T) {
	ref := mustParse(t, "# Title\n\n## A\nalpha\n## B\nbeta\n")
	candidates := []markdown.Document{
		mustParse(t, "# Title\n\n## A\nalpha\n## B\nbeta\n"),
		mustParse(t, "# Title\n\n## A\nalpha\n"),
		mustParse(t, "## B\nbeta\n## A\nalpha\n"),
		mustParse(t, ""),
	}
	cfg := DefaultConfig()
	cfg.SectionLevel = 2

	got, err := CompareAll(context.Background(), ref, candidates, cfg)
	if err != nil {
		t.Fatalf("CompareAll(...) failed: %v", err)
	}
	want := make([]*Report, len(candidates))
	for i, cand := range candidates {
		want[i] = Compare(ref, cand, cfg)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CompareAll(...) result is different [-want,+got]:\n%s", diff)
	}
}

func TestCompareAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ref := mustParse(t, "a\n")
	_, err := CompareAll(ctx, ref, []markdown.Document{ref, ref}, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CompareAll(...) error = %v, want %v", err, context.Canceled)
	}
}

func TestImprovement(t *testing.T) {
	ref := mustParse(t, "a\nb\nc\nd\n")
	base := Compare(ref, mustParse(t, "a\nx\ny\nz\n"), Config{})
	better := Compare(ref, mustParse(t, "a\nb\nc\nz\n"), Config{})
	if got, want := Improvement(base, better), 0.5; got != want {
		t.Errorf("Improvement(...) = %v, want %v", got, want)
	}
}
