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

package progress

import (
	"sync/atomic"
)

// 🎯 Sink receives byte deltas as data moves. Implementations must be cheap
// and must never block: sinks are called from the hot copy loop.
type Sink interface {
	Add(delta int64)
}

// 📊 Counter is an add-only atomic byte counter. It implements Sink so it
// can be handed straight to a copy as a per-task total.
type Counter struct {
	n atomic.Int64
}

// ➕ Add adds delta to the counter.
func (c *Counter) Add(delta int64) {
	c.n.Add(delta)
}

// 🔍 Total returns the bytes accumulated so far. Safe to call while writers
// are still adding.
func (c *Counter) Total() int64 {
	return c.n.Load()
}

// 🗑️ Discard is a Sink that drops every delta.
var Discard Sink = discard{}

type discard struct{}

func (discard) Add(int64) {}

// 🎯 Tracker aggregates run-wide progress: bytes copied, files completed,
// files skipped, failure count, and a one-way failure flag. Everything is
// atomic: counters only go up, the flag only flips to true, and readers
// never take a lock. A nil Tracker is valid and records nothing.
type Tracker struct {
	bytes          atomic.Int64
	filesCompleted atomic.Int64
	filesSkipped   atomic.Int64
	failures       atomic.Int64
	failed         atomic.Bool
}

// ➕ Add adds copied bytes. Tracker implements Sink.
func (t *Tracker) Add(delta int64) {
	if t == nil {
		return
	}
	t.bytes.Add(delta)
}

// ✅ FileCompleted records one fully copied file.
func (t *Tracker) FileCompleted() {
	if t == nil {
		return
	}
	t.filesCompleted.Add(1)
}

// ⏭️ FileSkipped records one intentionally skipped entry (non-regular file,
// exclude pattern, declined overwrite).
func (t *Tracker) FileSkipped() {
	if t == nil {
		return
	}
	t.filesSkipped.Add(1)
}

// ❌ RecordFailure bumps the failure count and latches the failure flag.
// The flag never resets: a run that failed once stays failed.
func (t *Tracker) RecordFailure() {
	if t == nil {
		return
	}
	t.failures.Add(1)
	t.failed.Store(true)
}

// 🔍 Failed reports whether any failure has been recorded.
func (t *Tracker) Failed() bool {
	if t == nil {
		return false
	}
	return t.failed.Load()
}

// 📸 Snapshot is a point-in-time read of a Tracker.
type Snapshot struct {
	Bytes          int64
	FilesCompleted int64
	FilesSkipped   int64
	Failures       int64
	Failed         bool
}

// 📸 Snapshot reads all counters. Individual loads are atomic; the snapshot
// as a whole is not, which is fine for display purposes.
func (t *Tracker) Snapshot() Snapshot {
	if t == nil {
		return Snapshot{}
	}
	return Snapshot{
		Bytes:          t.bytes.Load(),
		FilesCompleted: t.filesCompleted.Load(),
		FilesSkipped:   t.filesSkipped.Load(),
		Failures:       t.failures.Load(),
		Failed:         t.failed.Load(),
	}
}
