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

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/docsim"
	"znkr.io/docsim/internal/config"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "context",
			opts: []config.Option{
				docsim.Context(5),
			},
			want: config.Config{
				Context: 5,
				Mode:    config.Default.Mode,
				MinRun:  config.Default.MinRun,
			},
		},
		{
			name: "minimal",
			opts: []config.Option{
				docsim.Minimal(),
			},
			want: config.Config{
				Context: config.Default.Context,
				Mode:    config.ModeMinimal,
				MinRun:  config.Default.MinRun,
			},
		},
		{
			name: "negative-values-are-clamped",
			opts: []config.Option{
				docsim.Context(-1),
				docsim.MinRun(-3),
				docsim.Window(-10),
				docsim.Budget(-1),
			},
			want: config.Config{
				Context: 0,
				Mode:    config.Default.Mode,
				MinRun:  1,
			},
		},
		{
			name: "window-override",
			opts: []config.Option{
				docsim.Window(100),
				docsim.Budget(1000),
				docsim.Window(5),
			},
			want: config.Config{
				Context: config.Default.Context,
				Mode:    config.Default.Mode,
				MinRun:  config.Default.MinRun,
				Window:  5,
				Budget:  1000,
			},
		},
	}

	all := config.Context | config.Minimal | config.MinRun | config.Window | config.Budget | config.Junk
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, all)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(config.Config{}, "Junk")); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsJunk(t *testing.T) {
	cfg := config.FromOptions([]config.Option{docsim.Junk(func(s string) bool { return s == "" })}, config.Junk)
	if cfg.Junk == nil {
		t.Fatal("Junk option did not install a predicate")
	}
	if !cfg.Junk("") || cfg.Junk("text") {
		t.Errorf("Junk predicate does not forward to the user predicate")
	}

	cfg = config.FromOptions([]config.Option{docsim.Junk[string](nil)}, config.Junk)
	if cfg.Junk != nil {
		t.Errorf("Junk(nil) should reset the predicate")
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("FromOptions did not panic for a disallowed option")
		}
		if want := "Option docsim.Minimal not allowed here"; r != want {
			t.Errorf("panic = %q, want %q", r, want)
		}
	}()
	config.FromOptions([]config.Option{docsim.Minimal()}, config.Context)
}
