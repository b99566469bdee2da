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
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"znkr.io/docsim/report"
)

func newHistoryCmd() *cobra.Command {
	var format string
	var sections bool
	cmd := &cobra.Command{
		Use:   "history DIR",
		Short: "Print the recorded scores",
		Long: `Print the scores recorded by compare --history, oldest first.

Without --sections only the scores of whole documents are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := report.LoadHistory(args[0])
			if err != nil {
				return err
			}
			if !sections {
				var docs []report.HistoryRow
				for _, r := range rows {
					if r.Section == "" {
						docs = append(docs, r)
					}
				}
				rows = docs
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, r := range rows {
					status := "needs work"
					if r.Passed {
						status = "pass"
					}
					if r.Section != "" {
						status = r.Paired
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f%%\t%s\n", r.Time().Format(time.DateTime), r.Candidate, r.Section, 100*r.Ratio, status)
				}
				return tw.Flush()
			case "json", "yaml":
				return encodeRows(out, format, rows)
			default:
				return fmt.Errorf("unknown format %q, want one of text, json, yaml", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, or yaml")
	cmd.Flags().BoolVar(&sections, "sections", false, "Include section scores")
	return cmd
}

func encodeRows(w io.Writer, format string, rows []report.HistoryRow) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}
