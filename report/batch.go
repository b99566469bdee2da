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
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"znkr.io/docsim/markdown"
)

// CompareAll compares every candidate with the same reference concurrently. The reports are in
// the order of the candidates.
//
// The only error is the one of ctx, if it's canceled before all comparisons are done.
func CompareAll(ctx context.Context, reference markdown.Document, candidates []markdown.Document, cfg Config) ([]*Report, error) {
	reports := make([]*Report, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cand := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = Compare(reference, cand, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Improvement returns how much better r is than base, in ratio points.
func Improvement(base, r *Report) float64 {
	return r.OverallRatio - base.OverallRatio
}
