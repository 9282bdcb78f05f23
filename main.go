// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Quizmaster.
//
// Usage:
//
//	go run . serve
//	./quizmaster [command] [flags]
//
// See --help for the available commands.
package main

import (
	"os"

	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
