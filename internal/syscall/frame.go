// Package syscall implements the fast syscall path (spec.md component C7):
// a fixed-number dispatch table connecting a task's Runtime calls to
// descriptor lookups and character-device I/O.
package syscall

// Syscall numbers, following the common Unix convention spec.md names.
// Any number not in this set dispatches to ErrNosys.
const (
	NumRead  = 0
	NumWrite = 1
	NumYield = 24
	NumExit  = 60
)

// Error sentinels returned by Dispatch, encoded the way a real syscall ABI
// would pack an error into the unsigned return register: large values no
// successful byte count can ever reach (spec.md §4.7: all byte counts are
// < 2^60).
const (
	ErrBadFD uint64 = 1<<64 - 2
	ErrFault uint64 = 1<<64 - 3
	ErrNosys uint64 = 1<<64 - 4
)

// Frame is the Go rendition of the SyscallFrame spec.md §4.7 has the
// low-level stub build: rdi/rsi/rdx collapse into FD/Buf since this
// environment has no user/kernel shared address space for a raw buf
// pointer + len pair to index into (see DESIGN.md's note on the syscall
// ABI pointer fields) — Buf is the actual destination/source slice.
// SavedIP/SavedFlags are carried for parity with the spec's frame layout
// but are not consulted by Dispatch: no ring-3 return path exists to resume.
type Frame struct {
	Num  uint64
	FD   int
	Buf  []byte
	Code int

	SavedIP    uint64
	SavedFlags uint64
}

// IsError reports whether a Dispatch return value is one of the sentinels
// above rather than a successful byte count.
func IsError(v uint64) bool {
	return v == ErrBadFD || v == ErrFault || v == ErrNosys
}

// toError maps a Dispatch return value to a Go error, or nil on success.
func toError(v uint64) error {
	switch v {
	case ErrBadFD:
		return errBadFD
	case ErrFault:
		return errFault
	case ErrNosys:
		return errNosys
	default:
		return nil
	}
}
