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

import "znkr.io/docsim/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Context sets the number of matches to include as a prefix and postfix for hunks rendered by
// [znkr.io/docsim/textdiff]. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// Minimal aligns the inputs using a longest common subsequence instead of the default greedy
// longest-match search.
//
// The runtime is O(ND) where N = len(a) + len(b), and D is the number of differences between a
// and b. The ratio formula is the same in both modes; the resulting blocks may differ.
func Minimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeMinimal
		return config.Minimal
	}
}

// MinRun sets the shortest run of equal elements that is accepted as a match. Shorter runs are
// treated as differences. The default is 1.
func MinRun(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MinRun = max(1, n)
		return config.MinRun
	}
}

// Window truncates both inputs to their first n elements before they are aligned. A match that
// straddles the window boundary is split at the boundary. n <= 0 disables the window.
func Window(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Window = max(0, n)
		return config.Window
	}
}

// Budget limits the number of element comparisons spent by the greedy search. Inputs with many
// repeated lines can make the search quadratic; when the budget runs out the remaining ranges
// are left unmatched and [Alignment.Partial] is set. n <= 0 means no limit.
//
// Budget has no effect together with [Minimal].
func Budget(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Budget = max(0, n)
		return config.Budget
	}
}

// Junk marks elements that must not start a match, e.g. blank lines. Junk elements are still
// part of a match when they are adjacent to a match that was started by other elements.
//
// The predicate must accept the element type of the compared slices, otherwise the comparison
// functions panic.
func Junk[T any](isJunk func(T) bool) Option {
	return func(cfg *config.Config) config.Flag {
		if isJunk == nil {
			cfg.Junk = nil
		} else {
			cfg.Junk = func(v any) bool { return isJunk(v.(T)) }
		}
		return config.Junk
	}
}
