package syscall

import "errors"

// These mirror the sentinels in frame.go for callers that want a Go error
// instead of the raw encoded uint64 (the Runtime-facing wrappers in
// dispatcher.go).
var (
	errBadFD = errors.New("syscall: bad file descriptor")
	errFault = errors.New("syscall: fault")
	errNosys = errors.New("syscall: no such syscall")
)
