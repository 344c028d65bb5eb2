package progress

import (
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/walteh/fastcopy/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Widest file name the bar title will show before truncation.
const barTitleWidth = 40

// 🎯 Bar renders run progress as a terminal progress bar. It implements
// Sink, so byte deltas advance it directly. Deltas arrive from several
// goroutines at once; mutations go through a mutex. The bar is presentation
// only, the Tracker remains the source of truth for totals.
type Bar struct {
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// 🏭 StartBar starts a progress bar expecting totalBytes of work, writing to
// w. The total comes from the prescanner, so it is an estimate: files that
// grow or shrink mid-run move the bar off by the difference, nothing more.
func StartBar(w io.Writer, totalBytes int64) (*Bar, error) {
	if totalBytes <= 0 {
		totalBytes = 1
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(int(totalBytes)).
		WithTitle("Copying...").
		WithShowCount(false).
		WithShowElapsedTime(true).
		WithWriter(w).
		Start()
	if err != nil {
		return nil, errors.Errorf("starting progress bar: %w", err)
	}
	return &Bar{bar: bar}, nil
}

// ➕ Add advances the bar by delta bytes.
func (b *Bar) Add(delta int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar.Add(int(delta))
}

// 📝 SetCurrentFile updates the bar title with the entry being copied,
// truncated through the middle so both the head and the extension stay
// visible.
func (b *Bar) SetCurrentFile(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar.UpdateTitle("Copying " + text.TruncateMiddle(name, barTitleWidth))
}

// 🏁 Finish stops rendering. The completion message is the caller's job;
// the bar does not know whether the run as a whole succeeded.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.bar.Stop()
}
