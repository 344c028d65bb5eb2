/*
Package config loads the optional defaults file a fastcopy run starts from.

	+-----------+     CanParse?     +------------+
	|   Load    | ----------------> |  Parser    |
	| /Discover |                   | (registry) |
	+-----+-----+                   +-----+------+
	      |                               |
	      |                   +-----------+-----------+
	      |                   |                       |
	      v             +-----+------+         +------+-----+
	  Validate          | YAMLParser |         | HCLParser  |
	                    +------------+         +------------+

🎯 Purpose:
- Parse .fastcopy.yaml / .fastcopy.yml / .fastcopy.hcl
- Walk from the working directory upward to find one
- Validate and clamp what it finds

🔄 Flow:
1. Discover (or Load with an explicit path) reads the file
2. The registry picks a parser by filename
3. Validate rejects nonsense and raises undersized tuning values
4. The CLI layers flag values on top; flags always win

📝 Design Philosophy:
A config file is a convenience, never a requirement. Discovery failing to
find anything yields an empty Config, and every zero value means "use the
built-in default". Unknown YAML keys are errors; a silently ignored typo is
worse than a failed run.

🔍 Example:

	cfg, err := config.Discover(ctx)
	if err != nil {
		return err
	}
	if cfg.Parallel > 0 {
		parallel = cfg.Parallel
	}
*/
package config
