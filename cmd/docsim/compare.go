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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"znkr.io/docsim"
	"znkr.io/docsim/markdown"
	"znkr.io/docsim/report"
	"znkr.io/docsim/textdiff"
)

var errBelowTarget = errors.New("similarity below target")

func newCompareCmd(opts *globalOptions) *cobra.Command {
	var (
		flags   configFlags
		format  string
		history string
		color   bool
		context int
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "compare REFERENCE CANDIDATE...",
		Short: "Compare candidate transcriptions with a reference",
		Long: `Compare one or more candidate transcriptions with a reference transcription.

The text format prints the similarity, the section scores, and all differences. With more than
one candidate, it also prints how much each candidate improves on the first one. The diff and
patch formats print the line differences only.`,
		Example: `  # Compare a transcription section by section
  docsim compare paper.md paper.ocr.md --sections 2

  # Compare two transcription modes and record the scores
  docsim compare paper.md fast.md accurate.md --history .docsim/history

  # Compare only the author block
  docsim compare paper.md paper.ocr.md --region-start "# " --region-end "## Abstract"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseOutputFormat(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts, &flags)
			if err != nil {
				return err
			}

			ref, err := readDocument(args[0])
			if err != nil {
				return err
			}
			candidates := make([]markdown.Document, 0, len(args)-1)
			for _, path := range args[1:] {
				doc, err := readDocument(path)
				if err != nil {
					return err
				}
				candidates = append(candidates, doc)
			}

			out := cmd.OutOrStdout()
			switch f {
			case formatDiff, formatPatch:
				return writeDiffs(out, f, args[0], ref, args[1:], candidates, context, color)
			}

			slog.Debug("Comparing", "reference", args[0], "candidates", len(candidates))
			reports, err := report.CompareAll(cmd.Context(), ref, candidates, cfg)
			if err != nil {
				return err
			}
			for i, r := range reports {
				r.Reference, r.Candidate = args[0], args[i+1]
			}

			if err := report.Encode(out, report.Format(f), reports...); err != nil {
				return err
			}
			if f == formatText && len(reports) > 1 {
				fmt.Fprintln(out)
				for _, r := range reports[1:] {
					fmt.Fprintf(out, "%s vs %s: %+.1f points\n", r.Candidate, reports[0].Candidate, 100*report.Improvement(reports[0], r))
				}
			}

			if history != "" {
				path, err := report.AppendHistory(history, time.Now(), reports...)
				if err != nil {
					return err
				}
				slog.Info("Recorded scores", "path", path)
			}

			if strict {
				for _, r := range reports {
					if !r.Passed {
						return fmt.Errorf("%w: %s", errBelowTarget, r.Candidate)
					}
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml, diff, or patch")
	cmd.Flags().StringVar(&history, "history", "", "Append the scores to the history in this directory")
	cmd.Flags().BoolVar(&color, "color", false, "Color the diff format")
	cmd.Flags().IntVar(&context, "context", 3, "Context lines for the diff and patch formats")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if a candidate doesn't reach the target")
	return cmd
}

const (
	formatText  = "text"
	formatDiff  = "diff"
	formatPatch = "patch"
)

func parseOutputFormat(name string) (string, error) {
	switch name {
	case formatDiff, formatPatch:
		return name, nil
	}
	f, err := report.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("unknown format %q, want one of text, json, yaml, diff, patch", name)
	}
	return string(f), nil
}

func writeDiffs(w io.Writer, format, refPath string, ref markdown.Document, paths []string, candidates []markdown.Document, context int, color bool) error {
	for i, cand := range candidates {
		var out string
		switch format {
		case formatPatch:
			var err error
			out, err = textdiff.Patch(refPath, paths[i], ref.String(), cand.String(), context)
			if err != nil {
				return err
			}
		default:
			opts := []docsim.Option{docsim.Context(context)}
			if color {
				opts = append(opts, textdiff.TerminalColors())
			}
			diff := textdiff.Unified(ref.String(), cand.String(), opts...)
			if diff == "" {
				continue
			}
			out = fmt.Sprintf("--- %s\n+++ %s\n", refPath, paths[i]) + diff
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
