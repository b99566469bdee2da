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
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
)

// HistoryRow is one score of a past comparison. Every report is stored as one row for the whole
// document and one row per section.
type HistoryRow struct {
	UnixMilli int64   `parquet:"unix_milli" json:"unix_milli" yaml:"unix_milli"`
	Reference string  `parquet:"reference" json:"reference" yaml:"reference"`
	Candidate string  `parquet:"candidate" json:"candidate" yaml:"candidate"`
	Section   string  `parquet:"section" json:"section" yaml:"section"` // Empty for the whole document.
	Paired    string  `parquet:"paired" json:"paired" yaml:"paired"`
	Ratio     float64 `parquet:"ratio" json:"ratio" yaml:"ratio"`
	Passed    bool    `parquet:"passed" json:"passed" yaml:"passed"`
}

// Time returns the time of the comparison.
func (h HistoryRow) Time() time.Time { return time.UnixMilli(h.UnixMilli).UTC() }

const historyLayout = "20060102T150405.000Z"

// HistoryRows converts reports into history rows with the given timestamp.
func HistoryRows(at time.Time, reports ...*Report) []HistoryRow {
	var rows []HistoryRow
	ms := at.UnixMilli()
	for _, r := range reports {
		rows = append(rows, HistoryRow{
			UnixMilli: ms,
			Reference: r.Reference,
			Candidate: r.Candidate,
			Ratio:     r.OverallRatio,
			Passed:    r.Passed,
		})
		for _, s := range r.Sections {
			rows = append(rows, HistoryRow{
				UnixMilli: ms,
				Reference: r.Reference,
				Candidate: r.Candidate,
				Section:   title(s.Title),
				Paired:    string(s.Paired),
				Ratio:     s.Ratio,
			})
		}
	}
	return rows
}

// AppendHistory stores the reports as a new parquet file in dir and returns its path. The file
// name is derived from at, so files sort chronologically. Existing files are never overwritten,
// a second file for the same time gets a sequence number ("-1", "-2", ...).
func AppendHistory(dir string, at time.Time, reports ...*Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating history directory: %w", err)
	}
	stamp := at.UTC().Format(historyLayout)
	var (
		path string
		f    *os.File
		err  error
	)
	for seq := 0; ; seq++ {
		name := stamp
		if seq > 0 {
			name += "-" + strconv.Itoa(seq)
		}
		path = filepath.Join(dir, name+".parquet")
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("creating history file: %w", err)
	}

	w := parquet.NewGenericWriter[HistoryRow](f)
	if _, err := w.Write(HistoryRows(at, reports...)); err != nil {
		f.Close()
		return "", fmt.Errorf("writing history: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("writing history: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing history file: %w", err)
	}
	return path, nil
}

// LoadHistory reads all history files in dir, oldest first. A missing directory is an empty
// history.
func LoadHistory(dir string) ([]HistoryRow, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	slices.SortFunc(paths, func(a, b string) int {
		sa, na := historyKey(a)
		sb, nb := historyKey(b)
		return cmp.Or(strings.Compare(sa, sb), cmp.Compare(na, nb))
	})

	var rows []HistoryRow
	for _, path := range paths {
		rs, err := readHistory(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rs...)
	}
	return rows, nil
}

// historyKey splits a history file name into its time stamp and sequence number.
func historyKey(path string) (stamp string, seq int) {
	name := strings.TrimSuffix(filepath.Base(path), ".parquet")
	stamp, n, ok := strings.Cut(name, "-")
	if ok {
		seq, _ = strconv.Atoi(n)
	}
	return stamp, seq
}

func readHistory(path string) ([]HistoryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading history file %s: %w", path, err)
	}

	reader := parquet.NewGenericReader[HistoryRow](pf)
	defer reader.Close()

	rows := make([]HistoryRow, 0, pf.NumRows())
	buf := make([]HistoryRow, 128)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading history file %s: %w", path, err)
		}
	}
	return rows, nil
}
