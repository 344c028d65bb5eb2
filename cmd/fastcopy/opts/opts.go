package opts

import (
	"github.com/walteh/fastcopy/pkg/config"
	"github.com/walteh/fastcopy/pkg/log"
)

// RootOpts contains the resolved options shared by all commands
type RootOpts struct {
	Config      *config.Config // defaults file values, zero-value when absent
	UI          *log.Logger    // console logger for user-facing lines
	Parallel    int            // concurrent top-level copies after precedence
	Recursive   bool           // copy directories recursively
	Force       bool           // overwrite without prompting
	Interactive bool           // ask before overwriting existing entries
	Check       bool           // reserved for post-copy verification
	Quiet       bool           // suppress the bar and console lines
	Exclude     []string       // merged defaults-file and flag patterns
}
