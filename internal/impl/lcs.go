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

import "znkr.io/docsim/internal/config"

// lcs returns the match blocks of a longest common subsequence of x[smin:smax] and y[tmin:tmax].
//
// It's Myers' algorithm using the linear space refinement: Search for a d-path forwards from
// (smin, tmin) and backwards from (smax, tmax) at the same time until both searches overlap. The
// overlap is a point on an optimal path which splits the problem into two smaller ones.
//
// Junk elements and minimal run lengths are applied after the fact: Blocks that only consist of
// junk or that are shorter than the minimal run length are dropped. Align adds back junk runs
// that are identical on both sides.
//
// References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
func lcs[T comparable](x, y []T, smin, smax, tmin, tmax int, cfg config.Config) []Block {
	n := (smax - smin) + (tmax - tmin)
	m := myers[T]{
		x:  x,
		y:  y,
		vf: make([]int, n+3),
		vb: make([]int, n+3),
	}
	m.compare(smin, smax, tmin, tmax)

	blocks := merge(m.blocks)
	if cfg.Junk == nil && cfg.MinRun <= 1 {
		return blocks
	}
	out := blocks[:0]
	for _, b := range blocks {
		if b.N < cfg.MinRun {
			continue
		}
		if cfg.Junk != nil && allJunk(x[b.S:b.S+b.N], cfg.Junk) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func allJunk[T any](s []T, junk func(any) bool) bool {
	for _, e := range s {
		if !junk(e) {
			return false
		}
	}
	return true
}

type myers[T comparable] struct {
	x, y []T

	// v-arrays for the forwards and backwards search. They are indexed by diagonal plus offset
	// and store how far the furthest reaching path got on that diagonal (as a distance from the
	// respective start).
	vf, vb []int

	blocks []Block
}

func (m *myers[T]) match(s, t, n int) {
	if n > 0 {
		m.blocks = append(m.blocks, Block{s, t, n})
	}
}

// compare appends the blocks of an optimal alignment of x[smin:smax] and y[tmin:tmax] in
// increasing order.
func (m *myers[T]) compare(smin, smax, tmin, tmax int) {
	x, y := m.x, m.y

	s0, t0 := smin, tmin
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	m.match(s0, t0, smin-s0)

	s1 := smax
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	if smin < smax && tmin < tmax {
		if s, t, ok := m.split(smin, smax, tmin, tmax); ok {
			m.compare(smin, s, tmin, t)
			m.compare(s, smax, t, tmax)
		}
	}

	m.match(smax, tmax, s1-smax)
}

// split finds a point (s, t) on an optimal path through x[smin:smax] and y[tmin:tmax]. Neither
// range may be empty and the ranges must not have a common prefix or suffix, this guarantees
// that the point is different from both corners. If ok is false, there's no common element.
func (m *myers[T]) split(smin, smax, tmin, tmax int) (s, t int, ok bool) {
	x, y := m.x, m.y
	N, M := smax-smin, tmax-tmin
	dmax := (N + M + 1) / 2
	off := dmax
	vlen := 2 * dmax
	vf, vb := m.vf[:vlen+2], m.vb[:vlen+2]
	for i := range vf {
		vf[i] = -1
		vb[i] = -1
	}
	vf[off+1] = 0
	vb[off+1] = 0

	delta := N - M
	// If delta is odd, the forward search is the one that can detect an overlap first.
	front := delta%2 != 0

	// Shrink the range of diagonals that are searched when a path leaves the edit grid.
	kfmin, kfmax, kbmin, kbmax := 0, 0, 0, 0
	for d := range dmax {
		// Forwards.
		for k := -d + kfmin; k <= d-kfmax; k += 2 {
			i := off + k
			var a int
			if k == -d || (k != d && vf[i-1] < vf[i+1]) {
				a = vf[i+1] // step down (insertion)
			} else {
				a = vf[i-1] + 1 // step right (deletion)
			}
			b := a - k
			for a < N && b < M && x[smin+a] == y[tmin+b] {
				a++
				b++
			}
			vf[i] = a
			switch {
			case a > N:
				kfmax += 2
			case b > M:
				kfmin += 2
			case front:
				j := off + delta - k
				if j >= 0 && j < vlen && vb[j] != -1 && a >= N-vb[j] {
					return smin + a, tmin + b, true
				}
			}
		}

		// Backwards, the coordinates are distances from (smax, tmax).
		for k := -d + kbmin; k <= d-kbmax; k += 2 {
			i := off + k
			var a int
			if k == -d || (k != d && vb[i-1] < vb[i+1]) {
				a = vb[i+1]
			} else {
				a = vb[i-1] + 1
			}
			b := a - k
			for a < N && b < M && x[smax-a-1] == y[tmax-b-1] {
				a++
				b++
			}
			vb[i] = a
			switch {
			case a > N:
				kbmax += 2
			case b > M:
				kbmin += 2
			case !front:
				j := off + delta - k
				if j >= 0 && j < vlen && vf[j] != -1 {
					af := vf[j]
					bf := off + af - j
					if af >= N-a {
						return smin + af, tmin + bf, true
					}
				}
			}
		}
	}
	return 0, 0, false
}
