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

package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fastcopy/pkg/engine"
	"github.com/walteh/fastcopy/pkg/progress"
)

func TestCopyFileRoundTrip(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello world"), 0o600))

	n, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{})
	require.NoError(t, err, "plain copy must succeed")
	assert.Equal(t, int64(11), n, "returned count is the file size")

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got), "content survives the trip")

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "permission bits follow the source")
}

func TestCopyFileZeroLength(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "empty")
	dst := filepath.Join(dir, "copy")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	var sink progress.Counter
	n, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{Sinks: []progress.Sink{&sink}})
	require.NoError(t, err)
	assert.Zero(t, n, "an empty file copies zero bytes")
	assert.Zero(t, sink.Total(), "sinks see nothing")
	assert.FileExists(t, dst, "the destination still gets created")
}

func TestCopyFileMultipleChunks(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "big.bin")
	dst := filepath.Join(dir, "big.out")

	// 200 KiB against the 64 KiB minimum chunk forces several loop turns
	// and at least one mid-copy flush.
	content := strings.Repeat("abcdefgh", 25600)
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))

	n, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{
		ChunkSize: engine.MinChunkSize,
		SyncEvery: engine.MinChunkSize,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n, "every chunk is accounted for")

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(got), "chunk boundaries leave no seams")
}

func TestCopyFileTinyChunkIsClamped(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "s")
	dst := filepath.Join(dir, "d")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))

	// A 1-byte chunk request is raised to the minimum rather than honored.
	n, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{ChunkSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestCopyFileSinkDeltasSumToSize(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "s.bin")
	dst := filepath.Join(dir, "d.bin")
	content := strings.Repeat("x", 3*int(engine.MinChunkSize)+17)
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))

	var runWide, perTask progress.Counter
	n, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{
		ChunkSize: engine.MinChunkSize,
		Sinks:     []progress.Sink{&runWide, &perTask},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)
	assert.Equal(t, n, runWide.Total(), "the run-wide sink saw every byte once")
	assert.Equal(t, n, perTask.Total(), "the per-task sink saw the same stream")
}

func TestCopyFileMissingSource(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	_, err := engine.CopyFile(ctx, filepath.Join(dir, "ghost"), filepath.Join(dir, "out"), engine.FileOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrSourceNotFound, "missing sources map to the sentinel")
	assert.NoFileExists(t, filepath.Join(dir, "out"), "nothing is created for a missing source")
}

func TestCopyFileSourceIsDirectory(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	_, err := engine.CopyFile(ctx, sub, filepath.Join(dir, "out"), engine.FileOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrSourceIsDirectory, "directories are refused by the file copier")
}

func TestCopyFileOverwritesDestination(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("a much longer old content"), 0o644))

	n, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got), "the destination is truncated, not appended to")
}

func TestCopyFileCanceledContext(t *testing.T) {
	logger := testContext(t)
	ctx, cancel := context.WithCancel(logger)
	cancel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))

	_, err := engine.CopyFile(ctx, src, dst, engine.FileOptions{})
	require.Error(t, err, "a canceled context stops the copy")
	assert.ErrorIs(t, err, context.Canceled)
}
