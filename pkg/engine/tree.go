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
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/fastcopy/pkg/progress"
	"gitlab.com/tozd/go/errors"
)

// 🎯 TreeOptions tunes a directory tree copy.
type TreeOptions struct {
	// File is applied to every file copied within the tree.
	File FileOptions

	// Exclude holds doublestar patterns matched against each entry's
	// slash-separated path relative to the tree root. Matching entries
	// (and, for directories, everything below them) are skipped.
	Exclude []string

	// Tracker receives per-file accounting. May be nil.
	Tracker *progress.Tracker
}

// 🚀 CopyTree mirrors the directory tree rooted at srcDir into dstDir,
// creating destination directories as needed. Entries are processed in
// directory-read order; no ordering is promised. Regular files go through
// CopyFile, subdirectories recurse, and everything else (symlinks, sockets,
// FIFOs, devices) is skipped with a warning rather than followed: symlinks
// inside a tree are how copy loops happen, so they are not traversed.
//
// Before each directory level is copied, both paths are normalized and the
// copy fails with ErrDestinationInsideSource if the destination sits inside
// the source (or is the source itself). The check runs again at every level
// of recursion. The first error inside a directory stops that directory;
// already-copied files stay where they are.
func CopyTree(ctx context.Context, srcDir, dstDir string, opts TreeOptions) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("copying %s: %w", srcDir, ErrSourceNotFound)
		}
		return errors.Errorf("stating %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return errors.Errorf("copying %s: source is not a directory", srcDir)
	}
	return copyTreeLevel(ctx, srcDir, dstDir, NormalizePath(srcDir), opts)
}

func copyTreeLevel(ctx context.Context, srcDir, dstDir, root string, opts TreeOptions) error {
	logger := zerolog.Ctx(ctx)

	src := NormalizePath(srcDir)
	dst := NormalizePath(dstDir)
	if dst == src || ContainsPath(src, dst) {
		return errors.Errorf("copying %s to %s: %w", srcDir, dstDir, ErrDestinationInsideSource)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", src, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("copying %s: %w", src, err)
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		rel, _ := filepath.Rel(root, srcPath)
		if excluded(opts.Exclude, rel) {
			logger.Debug().Str("path", srcPath).Msg("skipping excluded entry")
			opts.Tracker.FileSkipped()
			continue
		}

		switch {
		case entry.IsDir():
			if err := copyTreeLevel(ctx, srcPath, dstPath, root, opts); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if _, err := CopyFile(ctx, srcPath, dstPath, opts.File); err != nil {
				return err
			}
			opts.Tracker.FileCompleted()
		default:
			logger.Warn().
				Str("path", srcPath).
				Str("mode", entry.Type().String()).
				Msg("skipping non-regular file")
			opts.Tracker.FileSkipped()
		}
	}

	return nil
}

// 🔍 excluded reports whether rel matches any of the patterns. Matching is
// done slash-separated so patterns behave the same on every platform.
func excluded(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
