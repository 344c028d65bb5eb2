package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/fastcopy/pkg/engine"
	"github.com/walteh/fastcopy/pkg/text"
)

// NewEstimateCmd creates a new estimate command
func NewEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate PATH...",
		Short: "Estimate how many files and bytes a copy would transfer",
		Long: `Estimate walks each path and reports how many regular files live under it
and their combined size. Missing or unreadable paths count as empty instead
of failing, so the command always succeeds.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			var totalFiles, totalBytes uint64
			for _, path := range args {
				files, size := engine.EstimateSize(path)
				totalFiles += files
				totalBytes += size
				fmt.Fprintf(out, "%s: %s, %s\n", path, text.FormatCount(files), text.FormatBytes(int64(size)))
			}
			if len(args) > 1 {
				fmt.Fprintf(out, "total: %s, %s\n", text.FormatCount(totalFiles), text.FormatBytes(int64(totalBytes)))
			}
		},
	}

	return cmd
}
