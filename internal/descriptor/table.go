// Package descriptor implements the fixed-size per-process descriptor
// table: a small array of optional references to character devices.
package descriptor

import "github.com/tuttlem/ares/internal/device"

// Size is the number of descriptor slots a process owns.
const Size = 16

// Table is a fixed-size array of optional device references. The zero
// value is a table with every slot empty.
type Table struct {
	slots [Size]device.CharDevice
}

// Set installs dev at fd. Does nothing if fd is out of range; an
// out-of-range write is not reported to the caller.
func (t *Table) Set(fd int, dev device.CharDevice) {
	if fd < 0 || fd >= Size {
		return
	}
	t.slots[fd] = dev
}

// Get returns the device at fd and whether the slot is populated and in
// range. This is the descriptor(pid, fd) lookup spec.md names, minus the
// pid argument: the caller already holds the Table for that pid.
func (t *Table) Get(fd int) (device.CharDevice, bool) {
	if fd < 0 || fd >= Size {
		return nil, false
	}
	d := t.slots[fd]
	return d, d != nil
}

// Clear empties fd. A no-op if fd is out of range or already empty.
func (t *Table) Clear(fd int) {
	if fd < 0 || fd >= Size {
		return
	}
	t.slots[fd] = nil
}
