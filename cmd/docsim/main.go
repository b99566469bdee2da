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

// docsim measures how faithfully markdown transcriptions reproduce a reference document.
//
// Usage:
//
//	docsim compare reference.md candidate.md [candidate.md...]
//	docsim sections paper.md --level 2
//	docsim region paper.md --start "# Title" --end "## Abstract"
//	docsim preview reference.md candidate.md
//	docsim history .docsim/history
//
// Configuration is read from .docsim.yaml (or the file given by --config), then from DOCSIM_*
// environment variables, including those in a .env file, and finally from flags.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	root := newRootCmd()
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
