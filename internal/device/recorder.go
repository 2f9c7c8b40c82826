package device

import (
	"time"
)

var _ Surface = (*Recorder)(nil)

// DisplayMode is one recorded ConfigureDisplay call.
type DisplayMode struct {
	Width  uint16
	Height uint16
	FPS    uint16
}

// Recorder is a Surface implementation for tests. It records every call,
// serves a fixed clock and a scripted key queue, and optionally fails
// calls with injected errors.
type Recorder struct {
	Out    []byte
	ErrOut []byte
	Modes  []DisplayMode
	Frames [][]byte
	Slept  []uint32
	Keys   []uint32

	Clock    time.Time
	FailWith error // returned by all fallible calls when set
}

// NewRecorder returns a recording surface with a fixed clock.
func NewRecorder() *Recorder {
	return &Recorder{
		Clock: time.Unix(1700000000, 123456789),
	}
}

// WriteText records the written text.
func (r *Recorder) WriteText(stream Stream, text []byte) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	if stream == StreamErr {
		r.ErrOut = append(r.ErrOut, text...)
	} else {
		r.Out = append(r.Out, text...)
	}
	return nil
}

// Now returns the fixed clock.
func (r *Recorder) Now() time.Time {
	return r.Clock
}

// ConfigureDisplay records the display mode.
func (r *Recorder) ConfigureDisplay(width, height, fps uint16) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.Modes = append(r.Modes, DisplayMode{Width: width, Height: height, FPS: fps})
	return nil
}

// PresentFramebuffer records a copy of the frame.
func (r *Recorder) PresentFramebuffer(pixels []byte) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	frame := make([]byte, len(pixels))
	copy(frame, pixels)
	r.Frames = append(r.Frames, frame)
	return nil
}

// PollKey pops the next scripted key.
func (r *Recorder) PollKey() (uint32, bool) {
	if len(r.Keys) == 0 {
		return 0, false
	}
	key := r.Keys[0]
	r.Keys = r.Keys[1:]
	return key, true
}

// SleepMs records the sleep without blocking.
func (r *Recorder) SleepMs(ms uint32) {
	r.Slept = append(r.Slept, ms)
}
