package device

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestStreamString(t *testing.T) {
	assert.Equal(t, "out", StreamOut.String())
	assert.Equal(t, "err", StreamErr.String())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	err := &Error{Op: "out", Err: cause}

	assert.Equal(t, "device out: broken pipe", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestHostWriteText(t *testing.T) {
	var out, errOut bytes.Buffer
	h := NewHost(&out, &errOut, log.NewTestLogger(t))

	assert.NoError(t, h.WriteText(StreamOut, []byte("hello")))
	assert.NoError(t, h.WriteText(StreamErr, []byte("oops")))
	assert.Equal(t, "hello", out.String())
	assert.Equal(t, "oops", errOut.String())
}

// The host runs graphical programs headless: display calls succeed and
// frames are dropped.
func TestHostHeadlessDisplay(t *testing.T) {
	h := NewHost(&bytes.Buffer{}, &bytes.Buffer{}, log.NewTestLogger(t))

	assert.NoError(t, h.ConfigureDisplay(320, 200, 60))
	assert.NoError(t, h.PresentFramebuffer(make([]byte, 320*200*4)))

	key, ok := h.PollKey()
	assert.False(t, ok)
	assert.Equal(t, uint32(0), key)
}
