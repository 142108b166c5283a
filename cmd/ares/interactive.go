package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/tuttlem/ares/internal/kernel"
)

// makeRaw puts fd into raw mode (no line buffering, no local echo) so every
// keystroke reaches the simulated keyboard device one byte at a time rather
// than after a line edit + Enter, and returns the prior state for restore.
// Grounded on the termios cflag fields surveyed from the pack's serial-port
// driver (other_examples' goserial MakeRaw), applied here through
// golang.org/x/sys/unix's ioctl wrappers rather than a raw driver, since
// this only ever talks to the controlling terminal.
func makeRaw(fd int) (*unix.Termios, error) {
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}
	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, err
	}
	return saved, nil
}

func restoreTermios(fd int, saved *unix.Termios) {
	unix.IoctlSetTermios(fd, unix.TCSETS, saved)
}

// runInteractive bridges real keystrokes on stdin into k's keyboard device
// and mirrors console output to stdout as it is produced, until the booted
// task exits (echoEntry treats Ctrl-D as end of session, same as the
// scripted path).
func runInteractive(k *kernel.Kernel, done <-chan struct{}) {
	fd := int(os.Stdin.Fd())
	saved, err := makeRaw(fd)
	if err != nil {
		outputErrorAndFail(fmt.Sprintf("failed to put terminal in raw mode: %s", err))
	}
	defer restoreTermios(fd, saved)

	keys := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if n == 1 {
				keys <- buf[0]
			}
			if err != nil {
				close(keys)
				return
			}
		}
	}()

	shown := 0
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			drainTranscript(k, &shown)
			return
		case b, ok := <-keys:
			if !ok {
				return
			}
			k.PushKey(b)
		case <-ticker.C:
			drainTranscript(k, &shown)
		}
	}
}

// drainTranscript prints whatever the console has produced since the last
// call, tracked by byte offset in shown.
func drainTranscript(k *kernel.Kernel, shown *int) {
	t := k.ConsoleTranscript()
	if len(t) > *shown {
		fmt.Print(t[*shown:])
		*shown = len(t)
	}
}
