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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/fastcopy/pkg/progress"
	"gitlab.com/tozd/go/errors"
)

// 📏 Transfer sizing. Chunks bound memory per copy; the sync threshold
// bounds how much unflushed data a crash can lose without paying a flush
// per chunk.
const (
	// DefaultChunkSize is how much is read and written per loop iteration.
	DefaultChunkSize = 8 << 20 // 8 MiB

	// DefaultSyncEvery is how many written bytes may accumulate before a
	// data-only flush is forced.
	DefaultSyncEvery = 64 << 20 // 64 MiB

	// MinChunkSize is the smallest chunk the engine will work with.
	MinChunkSize = 64 << 10 // 64 KiB
)

// 🎯 FileOptions tunes a single file copy.
type FileOptions struct {
	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int64

	// SyncEvery overrides DefaultSyncEvery when positive. Values below the
	// chunk size are raised to it.
	SyncEvery int64

	// Sinks receive per-chunk byte deltas: typically one run-wide sink and
	// at most one per-task sink. May be empty.
	Sinks []progress.Sink
}

func (o FileOptions) chunkSize() int64 {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	if o.ChunkSize < MinChunkSize {
		return MinChunkSize
	}
	return o.ChunkSize
}

func (o FileOptions) syncEvery() int64 {
	every := o.SyncEvery
	if every <= 0 {
		every = DefaultSyncEvery
	}
	if chunk := o.chunkSize(); every < chunk {
		every = chunk
	}
	return every
}

// 🚀 CopyFile copies one regular file from src to dst and returns the number
// of bytes written. The destination is created (or truncated) without
// prompting and inherits the source's permission bits. Data is moved in
// fixed-size chunks; each time the sync threshold of written bytes
// accumulates, a data-only flush is issued, and completion ends with one
// full sync covering data and metadata.
//
// On failure the partial destination is left in place. The returned count is
// what actually hit the file, so callers can report byte-accurate progress
// either way.
func CopyFile(ctx context.Context, src, dst string, opts FileOptions) (int64, error) {
	logger := zerolog.Ctx(ctx)

	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Errorf("opening %s: %w", src, ErrSourceNotFound)
		}
		return 0, errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, errors.Errorf("stating %s: %w", src, err)
	}
	if info.IsDir() {
		return 0, errors.Errorf("copying %s: %w", src, ErrSourceIsDirectory)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.Errorf("creating %s: %w", dst, err)
	}

	var written, unsynced int64
	buf := make([]byte, opts.chunkSize())
	syncEvery := opts.syncEvery()

	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return written, errors.Errorf("copying %s: %w", src, err)
		}

		n, readErr := in.Read(buf)
		if n > 0 {
			wn, writeErr := out.Write(buf[:n])
			written += int64(wn)
			unsynced += int64(wn)
			for _, sink := range opts.Sinks {
				sink.Add(int64(wn))
			}
			if writeErr != nil {
				out.Close()
				return written, errors.Errorf("writing %s: %w", dst, writeErr)
			}
			if unsynced >= syncEvery {
				if err := syncData(out); err != nil {
					out.Close()
					return written, errors.Errorf("flushing %s: %w", dst, err)
				}
				unsynced = 0
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			return written, errors.Errorf("reading %s: %w", src, readErr)
		}
	}

	// Completion sync covers data and metadata.
	if err := out.Sync(); err != nil {
		out.Close()
		return written, errors.Errorf("syncing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return written, errors.Errorf("closing %s: %w", dst, err)
	}

	logger.Debug().
		Str("source", src).
		Str("destination", dst).
		Int64("bytes", written).
		Msg("copied file")

	return written, nil
}
