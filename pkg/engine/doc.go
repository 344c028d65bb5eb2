/*
Package engine implements the copy machinery: single files, directory trees,
size prescans, and the bounded scheduler that drives a batch.

	+-----------+
	|  Runner   |
	| (N slots) |
	+-----+-----+
	      |
	      |  one unit per top-level entry
	      |
	+-----+-----+          +-----------+
	| CopyTree  +--------->| CopyFile  |
	| (recurse) |  files   | (chunked) |
	+-----------+          +-----------+

🎯 Purpose:
- Copy files in fixed-size chunks with periodic durability flushes
- Mirror directory trees, refusing destinations inside their own source
- Estimate batch size up front so progress bars have a total
- Schedule top-level entries onto a bounded number of slots

🔄 Flow:
1. The front end pre-scans sources (EstimateSize / EstimateAll)
2. Runner.Run pre-checks each entry, then dispatches it to a slot
3. File entries go straight to CopyFile; directories to CopyTree
4. Progress sinks see every chunk; the Tracker latches any failure
5. Run returns one bool: did anything fail

⚡ Key Responsibilities:
- Durability pacing (data-only flush each threshold, full sync at the end)
- Lexical containment checks at every tree level
- Keeping sibling entries independent: one failure never cancels another
- Clamping requested parallelism to what the machine has

🤝 Interfaces:
- progress.Sink: byte deltas out of the chunk loop
- Reporter: entry lifecycle events for console output
- TreeOptions/FileOptions: per-call tuning, zero values mean defaults

📝 Design Philosophy:
Concurrency lives only at the top of the batch. Inside a unit everything is
sequential, which keeps every destination subtree single-writer and makes
failure handling local: a unit that fails reports once, sets the shared
flag, and leaves its partial output for inspection. The engine never
prompts, never prints, and never decides policy; that belongs to the front
end.

🔍 Example:

	runner := engine.NewRunner(engine.Options{
		Parallel:  4,
		Recursive: true,
		Tracker:   tracker,
	})
	failed := runner.Run(ctx, sources, dest)
*/
package engine
