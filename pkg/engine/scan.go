package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// 🔢 Parallelism for multi-path prescans. Scanning is metadata-only, so a
// small fan-out is enough to hide per-directory latency.
const scanParallel = 4

// 🎯 EstimateSize walks path with an explicit stack and returns how many
// regular files live under it and their combined size in bytes. It exists to
// prime progress bars, so it never fails: a missing path yields (0, 0) and
// unreadable entries are skipped silently. Directories contribute no bytes
// of their own, and non-regular entries are not counted. A path that is
// itself a regular file yields (1, its size).
func EstimateSize(path string) (files uint64, totalBytes uint64) {
	stack := []string{path}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := os.Lstat(cur)
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			entries, err := os.ReadDir(cur)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				stack = append(stack, filepath.Join(cur, entry.Name()))
			}
		case info.Mode().IsRegular():
			files++
			totalBytes += uint64(info.Size())
		}
	}
	return files, totalBytes
}

// 🎯 EstimateAll sums EstimateSize over every path, scanning a few paths at
// a time. Like EstimateSize it never fails; ctx only bounds how long the
// fan-out keeps spawning.
func EstimateAll(ctx context.Context, paths []string) (files uint64, totalBytes uint64) {
	var f, b atomic.Uint64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanParallel)
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			nf, nb := EstimateSize(path)
			f.Add(nf)
			b.Add(nb)
			return nil
		})
	}
	_ = g.Wait()

	return f.Load(), b.Load()
}
