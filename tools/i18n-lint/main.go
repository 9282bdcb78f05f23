// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-lint checks the embedded locale files against the Go sources. It
// reports keys used in code but missing from a locale, keys no code refers
// to, and translations whose format verbs differ from the primary locale.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	keyRe  = regexp.MustCompile(`"((?:error|cli)\.[a-z_]+)"`)
	verbRe = regexp.MustCompile(`%[-+# 0]*\d*(?:\.\d+)?[a-zA-Z]`)
)

// report collects the findings of one lint run.
type report struct {
	Missing  map[string][]string // locale file -> keys
	Orphaned []string
	Verbs    map[string][]string // locale file -> keys with mismatched verbs
}

func (r report) failed() bool {
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	for _, keys := range r.Verbs {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-lint: %v\n", err)
		os.Exit(1)
	}

	for _, file := range sortedKeys(r.Missing) {
		for _, key := range r.Missing[file] {
			fmt.Printf("missing  %s: %s\n", file, key)
		}
	}
	for _, file := range sortedKeys(r.Verbs) {
		for _, key := range r.Verbs[file] {
			fmt.Printf("verbs    %s: %s\n", file, key)
		}
	}
	for _, key := range r.Orphaned {
		fmt.Printf("orphaned %s\n", key)
	}

	if r.failed() {
		os.Exit(1)
	}
	fmt.Println("locales are consistent")
}

func lint(root, dir string) (report, error) {
	used, err := findUsedKeys(root)
	if err != nil {
		return report{}, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadLocale(filepath.Join(dir, primaryLocale))
	if err != nil {
		return report{}, fmt.Errorf("load %s: %w", primaryLocale, err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return report{}, err
	}

	r := report{Missing: map[string][]string{}, Verbs: map[string][]string{}}
	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	for _, file := range files {
		name := filepath.Base(file)
		msgs := primary
		if name != primaryLocale {
			if msgs, err = loadLocale(file); err != nil {
				return report{}, fmt.Errorf("load %s: %w", name, err)
			}
		}
		for key := range used {
			if _, ok := msgs[key]; !ok {
				r.Missing[name] = append(r.Missing[name], key)
			}
		}
		if name != primaryLocale {
			for key, want := range primary {
				got, ok := msgs[key]
				if !ok {
					if _, isUsed := used[key]; !isUsed {
						r.Missing[name] = append(r.Missing[name], key)
					}
					continue
				}
				if !sameVerbs(want, got) {
					r.Verbs[name] = append(r.Verbs[name], key)
				}
			}
		}
		sort.Strings(r.Missing[name])
		sort.Strings(r.Verbs[name])
	}
	return r, nil
}

// findUsedKeys scans non-test Go files below root for quoted message IDs.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadLocale reads a flat message file into id -> text.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// sameVerbs reports whether a and b carry the same format verbs in the
// same order.
func sameVerbs(a, b string) bool {
	va, vb := verbRe.FindAllString(a, -1), verbRe.FindAllString(b, -1)
	if len(va) != len(vb) {
		return false
	}
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
