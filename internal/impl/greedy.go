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

package impl

import (
	"cmp"
	"slices"

	"znkr.io/docsim/internal/config"
)

// greedy implements the Ratcliff/Obershelp alignment ("gestalt pattern matching"): Find the
// longest run of equal elements in x[smin:smax] and y[tmin:tmax], then repeat on the ranges to the
// left and right of that run until no run is left.
//
// The result is not a longest common subsequence. It tends to match what humans perceive as
// similar text though, because long runs are never broken up in favor of many short matches.
//
// References:
//
// Ratcliff, J. W., Metzener, D. E. Pattern Matching: The Gestalt Approach. Dr. Dobb's Journal,
// 46 (July 1988).
type greedy[T comparable] struct {
	x, y []T

	// Positions of every non-junk element in y in increasing order.
	b2j map[T][]int

	// junk[t] is true if y[t] is junk. Nil if nothing is junk.
	junk []bool

	minRun int

	// Run lengths of matches ending in y[t-1] for the current and next row of x. Only the
	// entries listed in the touched slices are non-zero.
	cur, next             []int
	curTouched, nextTouch []int

	// Remaining comparisons, < 0 means unlimited.
	budget    int
	exhausted bool
}

func newGreedy[T comparable](x, y []T, cfg config.Config) *greedy[T] {
	g := &greedy[T]{
		x:      x,
		y:      y,
		b2j:    make(map[T][]int, len(y)),
		minRun: max(1, cfg.MinRun),
		budget: -1,
	}
	if cfg.Budget > 0 {
		g.budget = cfg.Budget
	}
	if cfg.Junk != nil {
		g.junk = make([]bool, len(y))
	}
	for t, e := range y {
		if g.junk != nil && cfg.Junk(e) {
			g.junk[t] = true
			continue
		}
		g.b2j[e] = append(g.b2j[e], t)
	}
	buf := make([]int, 2*(len(y)+1))
	g.cur, g.next = buf[:len(y)+1], buf[len(y)+1:]
	return g
}

// matchingBlocks returns all matching blocks sorted by position.
func (g *greedy[T]) matchingBlocks() []Block {
	var blocks []Block
	queue := [][4]int{{0, len(g.x), 0, len(g.y)}}
	for len(queue) > 0 {
		r := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		smin, smax, tmin, tmax := r[0], r[1], r[2], r[3]

		b := g.longestMatch(smin, smax, tmin, tmax)
		if b.N == 0 {
			continue
		}
		blocks = append(blocks, b)
		if smin < b.S && tmin < b.T {
			queue = append(queue, [4]int{smin, b.S, tmin, b.T})
		}
		if b.S+b.N < smax && b.T+b.N < tmax {
			queue = append(queue, [4]int{b.S + b.N, smax, b.T + b.N, tmax})
		}
	}
	slices.SortFunc(blocks, func(a, b Block) int {
		return cmp.Or(cmp.Compare(a.S, b.S), cmp.Compare(a.T, b.T))
	})
	return blocks
}

// longestMatch finds the longest run x[s:s+n] == y[t:t+n] in the given bounds. Of all runs with
// maximal length, it returns the one that starts earliest in x and, of those, the one that starts
// earliest in y. Runs may not start with a junk element, but a run is extended by adjacent junk
// elements on both ends.
//
// A zero Block is returned if there's no match of at least minRun elements.
func (g *greedy[T]) longestMatch(smin, smax, tmin, tmax int) Block {
	if g.exhausted {
		return Block{}
	}

	x, y := g.x, g.y
	best := Block{S: smin, T: tmin}
	for s := smin; s < smax; s++ {
		for _, t := range g.b2j[x[s]] {
			if t < tmin {
				continue
			}
			if t >= tmax {
				break
			}
			// cur[t] is the length of the run ending in x[s-1] and y[t-1].
			n := g.cur[t] + 1
			g.next[t+1] = n
			g.nextTouch = append(g.nextTouch, t+1)
			if n > best.N {
				best = Block{s - n + 1, t - n + 1, n}
			}
			if g.budget > 0 {
				g.budget--
				if g.budget == 0 {
					g.exhausted = true
				}
			}
		}
		for _, i := range g.curTouched {
			g.cur[i] = 0
		}
		g.cur, g.next = g.next, g.cur
		g.curTouched, g.nextTouch = g.nextTouch, g.curTouched[:0]
		if g.exhausted {
			break
		}
	}
	for _, i := range g.curTouched {
		g.cur[i] = 0
	}
	g.curTouched = g.curTouched[:0]

	if best.N == 0 {
		return Block{}
	}

	if g.junk != nil {
		// Junk elements never seed a match, but equal junk on either end belongs to it.
		for best.S > smin && best.T > tmin && g.junk[best.T-1] && x[best.S-1] == y[best.T-1] {
			best.S--
			best.T--
			best.N++
		}
		for best.S+best.N < smax && best.T+best.N < tmax && g.junk[best.T+best.N] && x[best.S+best.N] == y[best.T+best.N] {
			best.N++
		}
	}

	if best.N < g.minRun {
		return Block{}
	}
	return best
}
