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

// Package classify assigns a category to every change of a line diff.
//
// A [Classifier] evaluates an ordered list of rules. The first rule that matches a hunk determines
// its bucket, if no rule matches the hunk is put into the fallback bucket. The result is therefore
// defined for every hunk.
package classify

import (
	"strings"

	"znkr.io/docsim"
	"znkr.io/docsim/markdown"
)

// Bucket is the category of a hunk.
type Bucket string

const (
	Equal       Bucket = "equal"        // Unchanged lines, never counted.
	Blank       Bucket = "blank"        // Only blank lines differ.
	Heading     Bucket = "heading"      // A heading was added, removed, or changed.
	GenericText Bucket = "generic-text" // Everything else.
)

// Rule puts hunks into Bucket if Match returns true.
type Rule struct {
	Bucket Bucket
	Match  func(h docsim.Hunk[string]) bool
}

// BlankRule matches hunks whose changed lines are all empty or whitespace-only.
var BlankRule = Rule{Bucket: Blank, Match: allBlank}

// HeadingRule matches hunks that contain at least one line recognized by pat on either side.
func HeadingRule(pat markdown.HeadingPattern) Rule {
	return Rule{
		Bucket: Heading,
		Match: func(h docsim.Hunk[string]) bool {
			for _, lines := range [][]string{h.A, h.B} {
				for _, l := range lines {
					if _, ok := pat.Match(l); ok {
						return true
					}
				}
			}
			return false
		},
	}
}

// Classifier is an ordered list of rules with a fallback.
type Classifier struct {
	Rules    []Rule
	Fallback Bucket
}

// Default checks for blank lines first, then for ATX headings and falls back to [GenericText].
var Default = Classifier{
	Rules:    []Rule{BlankRule, HeadingRule(markdown.ATX)},
	Fallback: GenericText,
}

// Classify returns the bucket of h. Equal hunks are always in the [Equal] bucket.
func (c Classifier) Classify(h docsim.Hunk[string]) Bucket {
	if h.Tag == docsim.Equal {
		return Equal
	}
	for _, r := range c.Rules {
		if r.Match(h) {
			return r.Bucket
		}
	}
	if c.Fallback == "" {
		return GenericText
	}
	return c.Fallback
}

// Count returns the number of non-equal hunks per bucket.
func (c Classifier) Count(hunks []docsim.Hunk[string]) map[Bucket]int {
	counts := make(map[Bucket]int)
	for _, h := range hunks {
		if b := c.Classify(h); b != Equal {
			counts[b]++
		}
	}
	return counts
}

// Classify returns the bucket of h according to [Default].
func Classify(h docsim.Hunk[string]) Bucket {
	return Default.Classify(h)
}

func allBlank(h docsim.Hunk[string]) bool {
	if len(h.A)+len(h.B) == 0 {
		return false
	}
	for _, lines := range [][]string{h.A, h.B} {
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				return false
			}
		}
	}
	return true
}
