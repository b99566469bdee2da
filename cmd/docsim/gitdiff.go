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
	"os"

	"github.com/spf13/cobra"
	"znkr.io/docsim"
	"znkr.io/docsim/markdown"
	"znkr.io/docsim/report"
	"znkr.io/docsim/textdiff"
)

// newGitDiffCmd implements the GIT_EXTERNAL_DIFF protocol:
//
//	GIT_EXTERNAL_DIFF="docsim gitdiff" git diff
//
// git calls the command with seven arguments for every changed file.
func newGitDiffCmd(opts *globalOptions) *cobra.Command {
	var context int
	cmd := &cobra.Command{
		Use:    "gitdiff PATH OLD-FILE OLD-HEX OLD-MODE NEW-FILE NEW-HEX NEW-MODE",
		Short:  "Show diffs and similarity, for use as GIT_EXTERNAL_DIFF",
		Hidden: true,
		Args:   cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, oldFile, oldHex, _, newFile, newHex, newMode := args[0], args[1], args[2], args[3], args[4], args[5], args[6]

			old, err := readGitFile(oldFile)
			if err != nil {
				return fmt.Errorf("reading old file: %w", err)
			}
			new, err := readGitFile(newFile)
			if err != nil {
				return fmt.Errorf("reading new file: %w", err)
			}

			cfg, err := loadConfig(cmd, opts, nil)
			if err != nil {
				return err
			}
			ref, err := markdown.Parse(old)
			if err != nil {
				return err
			}
			cand, err := markdown.Parse(new)
			if err != nil {
				return err
			}
			r := report.Compare(ref, cand, cfg)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "diff --git a/%s b/%s\n", path, path)
			fmt.Fprintf(out, "similarity: %.1f%% (%d vs %d lines)\n", 100*r.OverallRatio, r.LenA, r.LenB)
			fmt.Fprintf(out, "index %s..%s %s\n", shortHex(oldHex), shortHex(newHex), newMode)
			fmt.Fprintf(out, "--- a/%s\n", path)
			fmt.Fprintf(out, "+++ b/%s\n", path)
			_, err = out.Write(textdiff.Unified(old, new, docsim.Context(context)))
			return err
		},
	}
	cmd.Flags().IntVar(&context, "context", 3, "Context lines around every change")
	return cmd
}

func readGitFile(name string) ([]byte, error) {
	if name == os.DevNull {
		return nil, nil
	}
	return os.ReadFile(name)
}

func shortHex(hex string) string {
	return hex[:min(len(hex), 10)]
}
