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

// Package impl contains the alignment algorithms behind docsim.Align.
//
// Both algorithms report their result as a list of match blocks. A block (s, t, n) states that
// x[s:s+n] == y[t:t+n]. The returned blocks are sorted, maximal (adjacent blocks are merged), and
// strictly increasing in both inputs.
package impl

import (
	"fmt"
	"slices"

	"znkr.io/docsim/internal/config"
)

// Block is a run of n equal elements starting at x[S] and y[T].
type Block struct {
	S, T, N int
}

// Align compares x and y and returns the match blocks. If the greedy search ran out of budget,
// partial is true and the blocks only describe part of the possible matches.
func Align[T comparable](x, y []T, cfg config.Config) (blocks []Block, partial bool) {
	if cfg.Window > 0 {
		x, y = x[:min(len(x), cfg.Window)], y[:min(len(y), cfg.Window)]
	}

	var inner []Block
	smin, smax, tmin, tmax := 0, len(x), 0, len(y)
	switch cfg.Mode {
	case config.ModeGreedy:
		g := newGreedy(x, y, cfg)
		inner = g.matchingBlocks()
		partial = g.exhausted
	case config.ModeMinimal:
		// A common prefix and suffix is always part of a longest common subsequence. Stripping
		// them is only valid if every run counts, i.e. without junk or a minimal run length.
		if cfg.Junk == nil && cfg.MinRun <= 1 {
			smin, smax, tmin, tmax = findChangeBounds(x, y)
		}
		inner = lcs(x, y, smin, smax, tmin, tmax, cfg)
	default:
		panic(fmt.Sprintf("unknown mode: %v", cfg.Mode))
	}
	if cfg.Junk != nil && !partial {
		inner = matchIdenticalGaps(x, y, inner, smin, smax, tmin, tmax, max(1, cfg.MinRun))
	}

	blocks = make([]Block, 0, len(inner)+2)
	if smin > 0 {
		blocks = append(blocks, Block{0, 0, smin})
	}
	blocks = append(blocks, inner...)
	if n := len(x) - smax; n > 0 {
		blocks = append(blocks, Block{smax, tmax, n})
	}
	return merge(blocks), partial
}

// matchIdenticalGaps adds a block for every gap between blocks that is the same on both sides.
// Junk can't seed a match, so a run that only consists of junk is never found otherwise, even if
// the inputs are identical.
func matchIdenticalGaps[T comparable](x, y []T, blocks []Block, smin, smax, tmin, tmax, minRun int) []Block {
	out := make([]Block, 0, len(blocks)+1)
	s, t := smin, tmin
	gap := func(send, tend int) {
		if n := send - s; n >= minRun && tend-t == n && slices.Equal(x[s:send], y[t:tend]) {
			out = append(out, Block{s, t, n})
		}
	}
	for _, b := range blocks {
		gap(b.S, b.T)
		out = append(out, b)
		s, t = b.S+b.N, b.T+b.N
	}
	gap(smax, tmax)
	return merge(out)
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	return
}

// merge collapses adjacent blocks in place. The input must be sorted.
func merge(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := blocks[:1]
	for _, b := range blocks[1:] {
		last := &out[len(out)-1]
		if last.S+last.N == b.S && last.T+last.N == b.T {
			last.N += b.N
			continue
		}
		out = append(out, b)
	}
	return out
}
