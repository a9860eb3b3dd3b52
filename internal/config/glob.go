// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// expandUnits resolves translation unit entries against dir. Literal entries
// are joined with dir; glob entries are expanded by walking the directory
// below their literal prefix. The result keeps entry order, with the
// matches of each glob sorted and duplicates dropped.
func expandUnits(dir string, entries []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, entry := range entries {
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(dir, entry)
		}
		if !isGlob(entry) {
			add(entry)
			continue
		}

		matches, err := globFiles(entry)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("translation unit pattern %q matches no files", entry)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[")
}

// globFiles walks the literal directory prefix of pattern and returns the
// regular files matching it, sorted.
func globFiles(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	root := literalPrefix(pattern)

	var matches []string
	err := filepath.WalkDir(filepath.FromSlash(root), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == filepath.FromSlash(root) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matchGlob(filepath.ToSlash(p), pattern) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// literalPrefix returns the directory part of pattern before its first
// glob segment.
func literalPrefix(pattern string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if isGlob(part) {
			prefix := strings.Join(parts[:i], "/")
			if prefix == "" && strings.HasPrefix(pattern, "/") {
				return "/"
			}
			if prefix == "" {
				return "."
			}
			return prefix
		}
	}
	return filepath.ToSlash(filepath.Dir(pattern))
}

// matchGlob reports whether the slash-separated path matches pattern as a
// whole. Supported syntax:
//   - * : any sequence of non-separator characters
//   - ** : any sequence of characters including separators
//   - ? : any single non-separator character
//   - [abc], [a-z], [!abc] or [^abc] : character classes
func matchGlob(path, pattern string) bool {
	return matchFrom(path, pattern, 0, 0)
}

func matchFrom(path, pattern string, pi, pti int) bool {
	for pti < len(pattern) {
		switch c := pattern[pti]; {
		case c == '*' && pti+1 < len(pattern) && pattern[pti+1] == '*':
			next := pti + 2
			if next < len(pattern) && pattern[next] == '/' {
				next++
			}
			if next >= len(pattern) {
				return true
			}
			for i := pi; i <= len(path); i++ {
				if matchFrom(path, pattern, i, next) {
					return true
				}
			}
			return false

		case c == '*':
			for i := pi; i <= len(path); i++ {
				if matchFrom(path, pattern, i, pti+1) {
					return true
				}
				if i < len(path) && path[i] == '/' {
					break
				}
			}
			return false

		case c == '?':
			if pi >= len(path) || path[pi] == '/' {
				return false
			}

		case c == '[':
			end := classEnd(pattern, pti)
			if end < 0 {
				// Unterminated class: literal '['.
				if pi >= len(path) || path[pi] != '[' {
					return false
				}
				break
			}
			if pi >= len(path) || !matchClass(path[pi], pattern[pti+1:end]) {
				return false
			}
			pi++
			pti = end + 1
			continue

		default:
			if pi >= len(path) || path[pi] != c {
				return false
			}
		}
		pi++
		pti++
	}
	return pi == len(path)
}

// classEnd returns the index of the ']' closing the class opened at start,
// or -1.
func classEnd(pattern string, start int) int {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for ; i < len(pattern); i++ {
		if pattern[i] == ']' {
			return i
		}
	}
	return -1
}

func matchClass(c byte, class string) bool {
	negated := len(class) > 0 && (class[0] == '!' || class[0] == '^')
	if negated {
		class = class[1:]
	}

	matched := false
	for i := 0; i < len(class); {
		if i+2 < len(class) && class[i+1] == '-' {
			if class[i] <= c && c <= class[i+2] {
				matched = true
			}
			i += 3
			continue
		}
		if class[i] == c {
			matched = true
		}
		i++
	}
	return matched != negated
}
