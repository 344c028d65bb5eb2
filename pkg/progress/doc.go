/*
Package progress tracks how much of a copy run has happened, without slowing
the copy down.

	+-----------+     Add(delta)      +-----------+
	| copy loop | ------------------> |   Sink    |
	+-----------+                     +-----+-----+
	                                        |
	                    +-------------------+-------------------+
	                    |                   |                   |
	              +-----+-----+       +-----+-----+       +-----+-----+
	              |  Tracker  |       |    Bar    |       |  Counter  |
	              | (atomics) |       |  (pterm)  |       | (per-task)|
	              +-----------+       +-----------+       +-----------+

🎯 Purpose:
- Count copied bytes, completed files, skipped entries, and failures
- Latch a run-wide "anything failed" flag
- Feed a terminal progress bar from the same deltas

🔄 Flow:
1. The copy loop calls Sink.Add after every chunk write
2. Tracker accumulates atomically; Bar renders
3. The front end reads Tracker.Failed() once at the end for the exit code

⚡ Key Responsibilities:
- Lock-free accounting (atomic adds, one-way flag)
- Never blocking the writer goroutines
- Keeping display concerns out of the engine

📝 Design Philosophy:
Counters only go up and the failure flag only flips to true. That makes
every read safe at any moment of the run: a snapshot can be stale but never
wrong. The Bar is deliberately dumb; if the prescan total was off, the bar
is off by the same amount and nothing else cares.

🔍 Example:

	tracker := &progress.Tracker{}
	bar, _ := progress.StartBar(os.Stderr, totalBytes)
	// hand both to the engine as sinks, then:
	if tracker.Failed() {
		os.Exit(1)
	}
*/
package progress
