package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

// ProgressBar shows entry filtering progress on a terminal.
// It does nothing when disabled or when the writer is not a terminal.
type ProgressBar struct {
	writer  io.Writer
	enabled bool
	prefix  string
	bar     *pb.ProgressBar
}

// NewProgress creates a progress bar writing to w
func NewProgress(w io.Writer, enabled bool) *ProgressBar {
	return &ProgressBar{
		writer:  w,
		enabled: enabled && IsTerminal(w),
		prefix:  "Filtering",
	}
}

// Start begins a bar for total entries
func (p *ProgressBar) Start(total int) {
	if !p.enabled {
		return
	}
	p.bar = pb.New(total).
		SetWriter(p.writer).
		Set("prefix", p.prefix).
		Start()
}

// Increment advances the bar by one entry
func (p *ProgressBar) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish completes the bar
func (p *ProgressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}

// Enabled reports whether the bar will render
func (p *ProgressBar) Enabled() bool {
	return p.enabled
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
