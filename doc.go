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

// Package docsim measures how similar two sequences are, typically the lines of two
// transcriptions of the same document.
//
// [Align] finds common runs of elements and reports them as [MatchBlock]s. The default is the
// greedy longest-match search popularized as Ratcliff/Obershelp or "gestalt pattern matching",
// [Minimal] switches to a longest common subsequence. [Ratio] condenses an alignment into a
// single number, [Diff] expands it into hunks that cover both sequences.
//
// Performance: The greedy search takes O(N*M) time in the worst case, e.g. for inputs with many
// repeated lines. [Budget] caps the work. With [Minimal], time complexity is O(ND) where
// N = len(a) + len(b) and D is the number of differences.
//
// Note: For markdown documents and reports, see the packages [znkr.io/docsim/markdown] and
// [znkr.io/docsim/report]. For unified diffs of text, see [znkr.io/docsim/textdiff].
//
// [znkr.io/docsim/markdown]: https://pkg.go.dev/znkr.io/docsim/markdown
// [znkr.io/docsim/report]: https://pkg.go.dev/znkr.io/docsim/report
// [znkr.io/docsim/textdiff]: https://pkg.go.dev/znkr.io/docsim/textdiff
package docsim
