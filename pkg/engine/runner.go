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
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/fastcopy/pkg/progress"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"
)

// 🔢 DefaultParallel is how many top-level entries copy concurrently when
// the caller does not say otherwise.
const DefaultParallel = 4

// 🎯 EntryResult is the outcome of one top-level entry.
type EntryResult struct {
	Source      string // the entry as the caller named it
	Destination string // where it was (or would have been) copied
	Bytes       int64  // bytes written for this entry
	Err         error  // nil on success
}

// 🤝 Reporter observes entries as they start and finish. Implementations
// must be safe for concurrent use; the runner calls them from its worker
// goroutines.
type Reporter interface {
	EntryStarted(ctx context.Context, source string)
	EntryDone(ctx context.Context, result EntryResult)
}

type nopReporter struct{}

func (nopReporter) EntryStarted(context.Context, string) {}
func (nopReporter) EntryDone(context.Context, EntryResult) {}

// 🎯 Options configures a Runner.
type Options struct {
	// Parallel caps concurrently copying entries. Zero or negative selects
	// DefaultParallel; anything above the machine's parallelism is clamped
	// down to it.
	Parallel int

	// Recursive allows directory entries. Without it a directory source is
	// recorded as a failure, the way cp refuses directories without -r.
	Recursive bool

	// File tunes every file copy. Sinks given here see bytes from all
	// entries.
	File FileOptions

	// Exclude is passed through to directory tree copies.
	Exclude []string

	// Tracker aggregates run-wide state. One is created if nil.
	Tracker *progress.Tracker

	// Reporter observes entry lifecycles. May be nil.
	Reporter Reporter
}

// 🎯 Runner copies a batch of top-level entries into one destination
// directory, a bounded number at a time. Each entry is an independent unit:
// a file goes through CopyFile, a directory through CopyTree, always into
// destination/basename(source). Units never share a destination subtree, so
// they need no coordination beyond the slot limit.
type Runner struct {
	parallel  int64
	recursive bool
	file      FileOptions
	exclude   []string
	tracker   *progress.Tracker
	reporter  Reporter
}

// 🏭 NewRunner builds a Runner, applying defaults and clamping parallelism.
func NewRunner(opts Options) *Runner {
	parallel := int64(opts.Parallel)
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	if limit := int64(runtime.NumCPU()); parallel > limit {
		parallel = limit
	}
	if parallel < 1 {
		parallel = 1
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = &progress.Tracker{}
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	// The run-wide tracker counts bytes alongside any caller sinks.
	file := opts.File
	file.Sinks = append(append([]progress.Sink{}, opts.File.Sinks...), tracker)

	return &Runner{
		parallel:  parallel,
		recursive: opts.Recursive,
		file:      file,
		exclude:   opts.Exclude,
		tracker:   tracker,
		reporter:  reporter,
	}
}

// 🔍 Parallel returns the effective slot count after clamping.
func (r *Runner) Parallel() int {
	return int(r.parallel)
}

// 🚀 Run copies every source entry into destDir and waits for all of them.
// It returns true when anything failed. Entries that fail their pre-checks
// (missing source, directory without Recursive) are recorded as failures
// immediately and never occupy a slot. A failing entry never stops its
// siblings; an empty or fully pre-failed batch is valid and returns without
// scheduling anything.
func (r *Runner) Run(ctx context.Context, sources []string, destDir string) bool {
	sem := semaphore.NewWeighted(r.parallel)
	var wg sync.WaitGroup

	for _, source := range sources {
		target := filepath.Join(destDir, filepath.Base(NormalizePath(source)))

		isDir, err := r.precheck(source)
		if err != nil {
			r.finishEntry(ctx, EntryResult{Source: source, Destination: target, Err: err})
			continue
		}

		source, target, isDir := source, target, isDir
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				r.finishEntry(ctx, EntryResult{Source: source, Destination: target, Err: errors.Errorf("waiting for copy slot for %s: %w", source, err)})
				return
			}
			defer sem.Release(1)

			r.reporter.EntryStarted(ctx, source)
			r.runEntry(ctx, source, target, isDir)
		}()
	}

	wg.Wait()
	return r.tracker.Failed()
}

// 🔍 precheck decides whether an entry may be scheduled at all.
func (r *Runner) precheck(source string) (isDir bool, err error) {
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errors.Errorf("checking %s: %w", source, ErrSourceNotFound)
		}
		return false, errors.Errorf("checking %s: %w", source, err)
	}
	if info.IsDir() && !r.recursive {
		return true, errors.Errorf("checking %s: %w", source, ErrSourceIsDirectory)
	}
	return info.IsDir(), nil
}

func (r *Runner) runEntry(ctx context.Context, source, target string, isDir bool) {
	// Per-entry byte counter rides along with the run-wide sinks.
	var entryBytes progress.Counter
	file := r.file
	file.Sinks = append(append([]progress.Sink{}, r.file.Sinks...), &entryBytes)

	var err error
	if isDir {
		err = CopyTree(ctx, source, target, TreeOptions{
			File:    file,
			Exclude: r.exclude,
			Tracker: r.tracker,
		})
	} else {
		_, err = CopyFile(ctx, source, target, file)
		if err == nil {
			r.tracker.FileCompleted()
		}
	}

	r.finishEntry(ctx, EntryResult{
		Source:      source,
		Destination: target,
		Bytes:       entryBytes.Total(),
		Err:         err,
	})
}

func (r *Runner) finishEntry(ctx context.Context, result EntryResult) {
	logger := zerolog.Ctx(ctx)
	if result.Err != nil {
		r.tracker.RecordFailure()
		logger.Error().
			Err(result.Err).
			Str("source", result.Source).
			Str("destination", result.Destination).
			Msg("entry failed")
	} else {
		logger.Info().
			Str("source", result.Source).
			Str("destination", result.Destination).
			Int64("bytes", result.Bytes).
			Msg("entry copied")
	}
	r.reporter.EntryDone(ctx, result)
}
