package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/docsim"
	"znkr.io/docsim/textdiff"
)

// Impl is a line diff implementation. Diff returns one line per element, prefixed with " " for
// matches, "-" for deletions, and "+" for insertions. Hunk headers and file headers are allowed.
type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

// everything is a context size that shows all matching lines.
const everything = 1 << 30

var Impls = []Impl{
	{
		Name: "docsim",
		Diff: func(x, y []byte) []byte {
			return textdiff.Unified(x, y, docsim.Context(everything))
		},
	},
	{
		Name: "docsim-minimal",
		Diff: func(x, y []byte) []byte {
			return textdiff.Unified(x, y, docsim.Context(everything), docsim.Minimal())
		},
	},
	{
		Name: "docsim-junk",
		Diff: func(x, y []byte) []byte {
			blank := func(line string) bool { return strings.TrimSpace(line) == "" }
			return textdiff.Unified(x, y, docsim.Context(everything), docsim.Junk(blank))
		},
	},
	{
		Name: "difflib",
		Diff: func(x, y []byte) []byte {
			out, err := textdiff.Patch("x", "y", string(x), string(y), everything)
			if err != nil {
				panic(err)
			}
			return []byte(out)
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, d := range diffs {
				prefix := " "
				switch d.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				}
				for _, line := range strings.SplitAfter(d.Text, "\n") {
					if line == "" {
						continue
					}
					buf.WriteString(prefix)
					buf.WriteString(line)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// godebug drops the line terminators, and so does this output.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a := 0
			for _, ch := range changes {
				for ; a < ch.A; a++ {
					buf.WriteString(" ")
					buf.Write(d.x[a])
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
					a++
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
				}
			}
			for ; a < len(d.x); a++ {
				buf.WriteString(" ")
				buf.Write(d.x[a])
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }

// Ratio computes the similarity ratio from the output of [Impl.Diff]: twice the number of matching
// lines divided by the number of lines in both inputs.
func Ratio(out []byte, lenX, lenY int) float64 {
	if lenX+lenY == 0 {
		return 1
	}
	matches := 0
	for line := range bytes.Lines(out) {
		if line[0] == ' ' {
			matches++
		}
	}
	return 2 * float64(matches) / float64(lenX+lenY)
}
