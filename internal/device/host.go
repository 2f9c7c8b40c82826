package device

import (
	"io"
	"time"

	"github.com/retroenv/retrogolib/log"
)

var _ Surface = (*Host)(nil)

// Host is the default surface implementation for running programs on a
// terminal: text goes to the configured writers, the clock and sleep are
// real, there is no keyboard and no display. Display configuration is
// accepted and frames are dropped with a debug log entry, so graphical
// programs still run headless.
type Host struct {
	out    io.Writer
	err    io.Writer
	logger *log.Logger

	frames uint64
}

// NewHost returns a host surface writing to the given streams.
func NewHost(out, err io.Writer, logger *log.Logger) *Host {
	return &Host{
		out:    out,
		err:    err,
		logger: logger,
	}
}

// WriteText writes text to the selected stream.
func (h *Host) WriteText(stream Stream, text []byte) error {
	w := h.out
	if stream == StreamErr {
		w = h.err
	}
	_, err := w.Write(text)
	return err
}

// Now returns the current wall clock time.
func (h *Host) Now() time.Time {
	return time.Now()
}

// ConfigureDisplay records the requested display mode.
func (h *Host) ConfigureDisplay(width, height, fps uint16) error {
	h.logger.Debug("display configured",
		log.String("mode", "headless"),
		log.Uint16("width", width),
		log.Uint16("height", height),
		log.Uint16("fps", fps))
	return nil
}

// PresentFramebuffer drops the frame; the host has no display.
func (h *Host) PresentFramebuffer(pixels []byte) error {
	h.frames++
	h.logger.Debug("frame dropped",
		log.Hex("frame", h.frames),
		log.Int("bytes", len(pixels)))
	return nil
}

// PollKey reports that no key is pending; the host has no keyboard.
func (h *Host) PollKey() (uint32, bool) {
	return 0, false
}

// SleepMs blocks the calling goroutine.
func (h *Host) SleepMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
