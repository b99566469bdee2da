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

// Package rvecs contains functions to work with result vectors: One bool per element of x and y
// that is true if the element is not part of a match. The alignment algorithms produce match
// blocks, result vectors are a more convenient representation for rendering hunks with context.
//
// Both vectors have one extra element at the end that is always false. This sentinel simplifies
// the loops that walk them.
package rvecs

import "znkr.io/docsim/internal/impl"

// Make allocates result vectors for x and y in one allocation.
func Make[T any](x, y []T) (rx, ry []bool) {
	return make2(len(x), len(y))
}

func make2(n, m int) (rx, ry []bool) {
	r := make([]bool, (n + m + 2))
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// FromBlocks returns the result vectors for sequences of length n and m that are aligned by the
// given blocks. Every element outside of a block is marked.
func FromBlocks(n, m int, blocks []impl.Block) (rx, ry []bool) {
	rx, ry = make2(n, m)
	s, t := 0, 0
	for _, b := range blocks {
		for ; s < b.S; s++ {
			rx[s] = true
		}
		for ; t < b.T; t++ {
			ry[t] = true
		}
		s, t = b.S+b.N, b.T+b.N
	}
	for ; s < n; s++ {
		rx[s] = true
	}
	for ; t < m; t++ {
		ry[t] = true
	}
	return
}
