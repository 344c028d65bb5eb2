//go:build !linux

package engine

import "os"

// syncData falls back to a full fsync on platforms without fdatasync.
func syncData(f *os.File) error {
	return f.Sync()
}
