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
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// charRatio returns the similarity of a and b rune by rune, and the Levenshtein distance between
// them. The diff stops refining after timeout, the ratio is a lower bound in that case.
func charRatio(a, b string, timeout time.Duration) (ratio float64, distance int) {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1, 0
	}
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	diffs := dmp.DiffMain(a, b, false)
	var equal int
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			equal += utf8.RuneCountInString(d.Text)
		}
	}
	return 2 * float64(equal) / float64(total), dmp.DiffLevenshtein(diffs)
}
