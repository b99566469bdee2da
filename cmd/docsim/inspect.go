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
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"znkr.io/docsim/markdown"
	"znkr.io/docsim/report"
)

func newSectionsCmd(opts *globalOptions) *cobra.Command {
	var (
		level  int
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "sections FILE",
		Short: "List the sections of a document",
		Long: `List the sections of a document with their line ranges, as they are used by compare.

Lines before the first heading form an untitled section if they aren't all blank.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("level") {
				cfg.SectionLevel = level
			}
			if cmd.Flags().Changed("heading-prefix") {
				cfg.HeadingPrefix = prefix
			}
			if cfg.SectionLevel == 0 {
				cfg.SectionLevel = 1
			}
			pat := markdown.ATX
			switch {
			case cfg.HeadingPrefix != "":
				pat = markdown.PrefixPattern(cfg.HeadingPrefix)
			case cfg.HeadingRegexp != "":
				// Validated by loadConfig.
				pat, _ = markdown.CompilePattern(cfg.HeadingRegexp)
			}

			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			sections := markdown.Segment(doc, pat, cfg.SectionLevel)
			slog.Debug("Segmented document", "pattern", pat, "level", cfg.SectionLevel, "sections", len(sections))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range sections {
				title := s.Title
				if s.Untitled() {
					title = "(untitled)"
				}
				fmt.Fprintf(tw, "%d-%d\t%d lines\t%s\n", s.Start+1, s.End, s.Len(), title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Heading level that starts a section (default 1)")
	cmd.Flags().StringVar(&prefix, "heading-prefix", "", `Line prefix of headings, e.g. "## " (default ATX headings)`)
	return cmd
}

func newRegionCmd() *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "region FILE",
		Short: "Print the region of a document between two markers",
		Long: `Print the lines from the first line containing the start marker up to, but not including,
the first line after it containing the end marker. Lines are printed with their line numbers.

A missing marker is not an error, the region extends to the start or end of the document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			reg := markdown.ExtractRegion(doc, start, end)
			if start != "" && !reg.StartFound {
				slog.Warn("Start marker not found, starting at the first line", "marker", start)
			}
			if end != "" && !reg.EndFound {
				slog.Warn("End marker not found, ending at the last line", "marker", end)
			}
			out := cmd.OutOrStdout()
			for _, l := range reg.Lines() {
				if _, err := fmt.Fprintf(out, "%5d | %s\n", l.No+1, l.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Text of the first line of the region")
	cmd.Flags().StringVar(&end, "end", "", "Text of the first line after the region")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "preview REFERENCE CANDIDATE",
		Short: "Print the first lines of two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := readDocument(args[0])
			if err != nil {
				return err
			}
			cand, err := readDocument(args[1])
			if err != nil {
				return err
			}
			return report.WritePreview(cmd.OutOrStdout(), ref, cand, n)
		},
	}
	cmd.Flags().IntVarP(&n, "lines", "n", 20, "Number of lines to print")
	return cmd
}
