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

package markdown

import "strings"

// Region is a part of a document between two markers.
type Region struct {
	Document // The lines of the region, with their original line numbers.

	Start, End int  // Range of the region in the document that it was extracted from.
	StartFound bool // False if the start marker was not found and the region starts at line 0.
	EndFound   bool // False if the end marker was not found and the region runs to the end.
}

// ExtractRegion returns the lines from the first line that contains startMarker up to, but not
// including, the first line after it that contains endMarker.
//
// Missing markers are not an error: Without a start marker, the region starts at the first line.
// Without an end marker (or if endMarker is empty), it ends with the last line. The StartFound
// and EndFound fields record these fallbacks, callers should treat such bounds as approximate.
func ExtractRegion(doc Document, startMarker, endMarker string) Region {
	r := Region{Start: 0, End: doc.Len()}
	from := 0
	if i := find(doc, startMarker, 0); i >= 0 {
		r.Start, r.StartFound = i, true
		from = i + 1
	}
	if endMarker != "" {
		if i := find(doc, endMarker, from); i >= 0 {
			r.End, r.EndFound = i, true
		}
	}
	r.Document = doc.Slice(r.Start, r.End)
	return r
}

func find(doc Document, marker string, from int) int {
	if marker == "" {
		return -1
	}
	for i := from; i < doc.Len(); i++ {
		if strings.Contains(doc.lines[i].Text, marker) {
			return i
		}
	}
	return -1
}
