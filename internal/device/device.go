// Package device defines the narrow host interface the execution engine
// dispatches device operations to. The engine only decodes operands and
// invokes the surface synchronously; console, clock, display and keyboard
// behavior belong to the host embedding the machine.
package device

import (
	"fmt"
	"time"
)

// Stream selects an output text stream.
type Stream uint8

// Output streams of the pr and epr operations.
const (
	StreamOut Stream = iota
	StreamErr
)

// String returns the stream name.
func (s Stream) String() string {
	if s == StreamErr {
		return "err"
	}
	return "out"
}

// Surface is the set of host services backing the device operations.
// All calls are synchronous: the machine does not fetch the next
// instruction until the call returned.
type Surface interface {
	// WriteText writes UTF-8 encoded text to an output stream.
	WriteText(stream Stream, text []byte) error
	// Now returns the current wall clock time.
	Now() time.Time
	// ConfigureDisplay sets the display dimensions and target frame rate.
	ConfigureDisplay(width, height, fps uint16) error
	// PresentFramebuffer transfers a full frame of 4-byte pixels to the
	// display. It returns after the frame has been handed over.
	PresentFramebuffer(pixels []byte) error
	// PollKey returns the next pending key, or false if none is pending.
	PollKey() (uint32, bool)
	// SleepMs blocks for the given number of milliseconds.
	SleepMs(ms uint32)
}

// Error wraps a failure reported by a Surface implementation. The machine
// surfaces it unchanged; the host decides whether it is fatal.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("device %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
