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
	"fmt"

	"znkr.io/docsim/internal/config"
)

// Tag describes what a hunk does.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Tag -linecomment
type Tag int

const (
	Equal   Tag = iota // equal
	Insert             // insert
	Delete             // delete
	Replace            // replace
)

// MarshalText encodes the tag as its name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Hunk is a contiguous span of an alignment.
//
//   - For Equal, A and B contain the same elements.
//   - For Insert, A is empty and B contains the elements only present in b.
//   - For Delete, B is empty and A contains the elements only present in a.
//   - For Replace, A and B both contain elements that are not matched.
type Hunk[T any] struct {
	Tag        Tag
	PosA, EndA int // Range in a.
	PosB, EndB int // Range in b.
	A, B       []T // a[PosA:EndA] and b[PosB:EndB]
}

func (h Hunk[T]) String() string {
	return fmt.Sprintf("%v(%d-%d,%d-%d)", h.Tag, h.PosA, h.EndA, h.PosB, h.EndB)
}

// Diff aligns a and b and returns the alignment as hunks. See [Hunks] for the properties of the
// result.
//
// The following options are supported: [Minimal], [MinRun], [Window], [Budget], [Junk]
func Diff[T comparable](a, b []T, opts ...Option) []Hunk[T] {
	cfg := config.FromOptions(opts, alignFlags)
	return Hunks(a, b, align(a, b, cfg))
}

// Hunks converts an alignment of a and b into hunks. The hunks are ordered and tile
// [0,al.LenA) and [0,al.LenB) without gaps or overlaps: Every matched block becomes an equal
// hunk, every gap between two blocks becomes an insert, delete, or replace hunk.
//
// If the alignment was computed with a [Window], only the first al.LenA and al.LenB elements of a
// and b are used. If both sequences are empty, the result is empty.
func Hunks[T any](a, b []T, al Alignment) []Hunk[T] {
	a, b = a[:al.LenA], b[:al.LenB]
	var out []Hunk[T]
	gap := func(s0, s1, t0, t1 int) {
		var tag Tag
		switch {
		case s0 == s1 && t0 == t1:
			return
		case s0 == s1:
			tag = Insert
		case t0 == t1:
			tag = Delete
		default:
			tag = Replace
		}
		out = append(out, Hunk[T]{tag, s0, s1, t0, t1, a[s0:s1:s1], b[t0:t1:t1]})
	}
	s, t := 0, 0
	for _, blk := range al.Blocks {
		gap(s, blk.A, t, blk.B)
		s, t = blk.A+blk.Len, blk.B+blk.Len
		out = append(out, Hunk[T]{Equal, blk.A, s, blk.B, t, a[blk.A:s:s], b[blk.B:t:t]})
	}
	gap(s, len(a), t, len(b))
	return out
}
