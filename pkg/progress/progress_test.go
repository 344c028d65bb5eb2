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

package progress_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fastcopy/pkg/progress"
)

func TestCounter(t *testing.T) {
	var c progress.Counter
	c.Add(5)
	c.Add(3)
	assert.Equal(t, int64(8), c.Total(), "counter sums deltas")
}

func TestTrackerConcurrentAdds(t *testing.T) {
	var tr progress.Tracker

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tr.Add(3)
				tr.FileCompleted()
			}
		}()
	}
	wg.Wait()

	snap := tr.Snapshot()
	assert.Equal(t, int64(workers*perWorker*3), snap.Bytes, "every byte delta lands exactly once")
	assert.Equal(t, int64(workers*perWorker), snap.FilesCompleted, "every completion lands exactly once")
	assert.False(t, snap.Failed, "no failure was recorded")
}

func TestTrackerFailureLatches(t *testing.T) {
	var tr progress.Tracker

	assert.False(t, tr.Failed(), "fresh tracker has not failed")

	tr.RecordFailure()
	assert.True(t, tr.Failed(), "failure flag flips on first failure")

	tr.FileCompleted()
	tr.Add(100)
	assert.True(t, tr.Failed(), "later successes never clear the flag")

	tr.RecordFailure()
	assert.Equal(t, int64(2), tr.Snapshot().Failures, "failure count keeps counting")
}

func TestNilTrackerIsSafe(t *testing.T) {
	var tr *progress.Tracker

	// All of these must be no-ops, not panics.
	tr.Add(10)
	tr.FileCompleted()
	tr.FileSkipped()
	tr.RecordFailure()

	assert.False(t, tr.Failed(), "nil tracker reports no failure")
	assert.Equal(t, progress.Snapshot{}, tr.Snapshot(), "nil tracker snapshots to zero")
}

func TestDiscardSink(t *testing.T) {
	// Discard accepts anything and keeps nothing.
	progress.Discard.Add(1 << 40)
	progress.Discard.Add(-5)
}

func TestBarAcceptsDeltas(t *testing.T) {
	var buf bytes.Buffer
	bar, err := progress.StartBar(&buf, 100)
	require.NoError(t, err, "bar starts against a plain writer")

	bar.SetCurrentFile("some/deeply/nested/path/with/a/very/long/name.bin")
	bar.Add(40)
	bar.Add(60)
	bar.Finish()

	assert.NotEmpty(t, buf.String(), "bar rendered something")
}

func TestBarZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	bar, err := progress.StartBar(&buf, 0)
	require.NoError(t, err, "an empty run still gets a bar")
	bar.Finish()
}
