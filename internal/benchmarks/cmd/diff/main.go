// diff is a small CLI to manually run the diff implementations used for benchmarking.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/txtar"
	"znkr.io/docsim/internal/benchmarks"
)

type config struct {
	lib   string
	x, y  string
	txtar string
	ratio bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "docsim", "library to use for diffing")
	flag.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	flag.BoolVar(&cfg.ratio, "ratio", false, "print the line similarity ratio after the diff")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	var lib *benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if l.Name == cfg.lib {
			lib = &l
		}
	}
	if lib == nil {
		return fmt.Errorf("lib not found %q", cfg.lib)
	}

	x, y, err := inputs(cfg)
	if err != nil {
		return err
	}

	out := lib.Diff(x, y)
	os.Stdout.Write(out)
	if cfg.ratio {
		fmt.Printf("ratio: %.3f\n", benchmarks.Ratio(out, countLines(x), countLines(y)))
	}
	return nil
}

func inputs(cfg config) (x, y []byte, err error) {
	if cfg.txtar == "" {
		if x, err = os.ReadFile(cfg.x); err != nil {
			return nil, nil, err
		}
		if y, err = os.ReadFile(cfg.y); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}
	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "x":
			x = f.Data
		case "y":
			y = f.Data
		}
	}
	return x, y, nil
}

func countLines(data []byte) int {
	n := 0
	for range bytes.Lines(data) {
		n++
	}
	return n
}
