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

package docsim

import (
	"cmp"
	"slices"

	"znkr.io/docsim/internal/config"
	"znkr.io/docsim/internal/impl"
)

// MatchBlock is a maximal run of Len equal elements starting at a[A] and b[B].
type MatchBlock struct {
	A, B, Len int
}

// Alignment is the result of aligning two sequences.
type Alignment struct {
	Blocks     []MatchBlock // Strictly increasing and non-overlapping in both sequences.
	LenA, LenB int          // Length of the aligned sequences, after applying a [Window].

	// Partial is set if the search ran out of [Budget]. The blocks are still valid, but there
	// might be more matches and the ratio is a lower bound.
	Partial bool
}

// Matches returns the number of matched elements.
func (al Alignment) Matches() int {
	var n int
	for _, b := range al.Blocks {
		n += b.Len
	}
	return n
}

// Ratio returns the similarity 2*M/(LenA+LenB) where M is the number of matched elements. It's
// 1.0 if both sequences are empty.
func (al Alignment) Ratio() float64 {
	if al.LenA+al.LenB == 0 {
		return 1.0
	}
	return 2 * float64(al.Matches()) / float64(al.LenA+al.LenB)
}

const alignFlags = config.Minimal | config.MinRun | config.Window | config.Budget | config.Junk

// Align finds a common subsequence of a and b and returns it as a list of match blocks.
//
// By default, Align uses a greedy search: It finds the longest run of equal elements, then
// continues on the unmatched ranges to the left and right of it. Of several runs of maximal
// length, the one that starts first in a is chosen and, of those, the one that starts first in
// b. The result is deterministic but not necessarily a longest common subsequence.
//
// The following options are supported: [Minimal], [MinRun], [Window], [Budget], [Junk]
func Align[T comparable](a, b []T, opts ...Option) Alignment {
	cfg := config.FromOptions(opts, alignFlags)
	return align(a, b, cfg)
}

func align[T comparable](a, b []T, cfg config.Config) Alignment {
	blocks, partial := impl.Align(a, b, cfg)
	al := Alignment{
		LenA:    len(a),
		LenB:    len(b),
		Partial: partial,
	}
	if cfg.Window > 0 {
		al.LenA, al.LenB = min(al.LenA, cfg.Window), min(al.LenB, cfg.Window)
	}
	if len(blocks) > 0 {
		al.Blocks = make([]MatchBlock, len(blocks))
		for i, b := range blocks {
			al.Blocks[i] = MatchBlock{b.S, b.T, b.N}
		}
	}
	return al
}

// Ratio returns the similarity of a and b as a number in [0, 1]. It's 1.0 iff a and b are equal
// and 0.0 iff they have no element in common.
//
// Unlike [Alignment.Ratio], the result does not depend on the order of the arguments:
// Ratio(a, b) == Ratio(b, a). It's the ratio of [AlignSymmetric].
//
// The following options are supported: [Minimal], [MinRun], [Window], [Budget], [Junk]
func Ratio[T cmp.Ordered](a, b []T, opts ...Option) float64 {
	return AlignSymmetric(a, b, opts...).Ratio()
}

// AlignSymmetric is like [Align], but the match blocks don't depend on the order of the
// arguments. The blocks found by [Align] can, because ties are broken in favor of the earlier
// position in a. AlignSymmetric therefore always aligns the sequences in the same orientation,
// the shorter one first or, if both have the same length, the smaller one first, and returns
// the result with a and b in the order they were passed.
//
// The following options are supported: [Minimal], [MinRun], [Window], [Budget], [Junk]
func AlignSymmetric[T cmp.Ordered](a, b []T, opts ...Option) Alignment {
	cfg := config.FromOptions(opts, alignFlags)
	if len(a) > len(b) || len(a) == len(b) && slices.Compare(a, b) > 0 {
		return align(b, a, cfg).swap()
	}
	return align(a, b, cfg)
}

// swap exchanges the roles of a and b.
func (al Alignment) swap() Alignment {
	out := Alignment{LenA: al.LenB, LenB: al.LenA, Partial: al.Partial}
	if len(al.Blocks) > 0 {
		out.Blocks = make([]MatchBlock, len(al.Blocks))
		for i, b := range al.Blocks {
			out.Blocks[i] = MatchBlock{b.B, b.A, b.Len}
		}
	}
	return out
}
