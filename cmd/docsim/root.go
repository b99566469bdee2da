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
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"znkr.io/docsim/markdown"
)

// globalOptions are the flags shared by all commands.
type globalOptions struct {
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "docsim",
		Short: "Measure the fidelity of markdown transcriptions",
		Long: `docsim compares markdown transcriptions of a document with a reference transcription.

It reports a similarity ratio for the whole document and for every section, and classifies
the differences into blank line, heading, and text changes.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env file is fine.
			_ = godotenv.Load()
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "Configuration file (default "+defaultConfigFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newCompareCmd(opts))
	cmd.AddCommand(newSectionsCmd(opts))
	cmd.AddCommand(newRegionCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newGitDiffCmd(opts))
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// readDocument reads and parses a markdown file, "-" is stdin.
func readDocument(path string) (markdown.Document, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return markdown.Document{}, fmt.Errorf("reading document: %w", err)
	}
	doc, err := markdown.Parse(data)
	if err != nil {
		return markdown.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("Read document", "path", path, "lines", doc.Len())
	return doc, nil
}
