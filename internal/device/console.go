package device

import (
	"bytes"
	"sync"
)

// Console is a write-mostly character device standing in for VGA/serial
// text output (the real driver is out of scope per spec.md §1; this keeps
// its observable contract). Reads always return io.EOF-equivalent (0, nil)
// since the console has no input buffer of its own.
type Console struct {
	mu  sync.Mutex
	buf bytes.Buffer // transcript, for diagnostics and tests
}

// NewConsole returns an empty console.
func NewConsole() *Console { return &Console{} }

func (c *Console) Name() string { return "console" }

// Write appends buf to the transcript and reports success in full, the way
// the teacher's opcode handlers always report a definite cycle cost: no
// partial writes.
func (c *Console) Write(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(buf)
}

// Read on a console is always empty; there is no input buffer.
func (c *Console) Read(buf []byte) (int, error) {
	return 0, nil
}

// Transcript returns everything written to the console so far. Used by
// diagnostics and by tests asserting end-to-end scenario output.
func (c *Console) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}
