// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time, e.g.
//
//	go build -ldflags "-X github.com/toeirei/quizmaster/buildvars.Version=v1.0.0"
package buildvars

var (
	// Version is the release version. Empty for local builds.
	Version string
	// Commit is the short commit SHA the binary was built from.
	Commit string
	// Date is the RFC3339 build timestamp.
	Date string
)

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// CommitOrDefault returns Commit if set, otherwise def.
func CommitOrDefault(def string) string {
	if len(Commit) > 0 {
		return Commit
	}
	return def
}
