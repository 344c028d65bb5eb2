// Copyright 2025 walteh LLC
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

package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// 🎯 NormalizePath resolves path against the current working directory and
// collapses "." and ".." components lexically. It never touches the
// filesystem: symlinks are not resolved and the path does not need to
// exist. A ".." at the root is a no-op, so "/.." normalizes to "/".
func NormalizePath(path string) string {
	if !filepath.IsAbs(path) {
		if cwd, err := os.Getwd(); err == nil {
			path = filepath.Join(cwd, path)
		}
	}
	return filepath.Clean(path)
}

// 🎯 ContainsPath reports whether child lies strictly inside parent after
// normalization. Equal paths do not count as containment, and shared name
// prefixes that are not component boundaries do not either: "a/bc" is not
// inside "a/b".
func ContainsPath(parent, child string) bool {
	p := NormalizePath(parent)
	c := NormalizePath(child)
	if p == c {
		return false
	}
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
