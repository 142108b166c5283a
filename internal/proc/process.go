// Package proc owns process identity, the process table, and the
// spawn/exit/wait lifecycle (spec.md §3-4, components C4 and C6). A
// Process's State field is changed by this package's Table methods, by
// package sched's scheduling operations, and by kernel.Boot, always while
// holding the process-table spinlock (Table.Lock), so that lock stays the
// single source of truth spec.md §5 requires.
package proc

import (
	"github.com/tuttlem/ares/internal/cpu"
	"github.com/tuttlem/ares/internal/descriptor"
)

// State is a Process's position in the Ready/Running/Blocked/Zombie state
// machine (spec.md §3, invariant 1-3).
type State int

const (
	Ready State = iota
	Running
	Blocked
	Zombie
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Blocked:
		return "blocked"
	case Zombie:
		return "zombie"
	default:
		return "unknown"
	}
}

// MemoryKind classifies a MemoryRegion for diagnostics.
type MemoryKind int

const (
	RegionStack MemoryKind = iota
	RegionHeap
	RegionOther
)

func (k MemoryKind) String() string {
	switch k {
	case RegionStack:
		return "stack"
	case RegionHeap:
		return "heap"
	default:
		return "other"
	}
}

// MemoryRegion is one entry in a process's diagnostic region list.
type MemoryRegion struct {
	Base uint64
	Size uint64
	Kind MemoryKind
}

// WaitChannelKind distinguishes the event sources a process can block on.
type WaitChannelKind int

const (
	NoChannel WaitChannelKind = iota
	KeyboardInput
	ChildExit
	AnyChild
)

// WaitChannel is a tagged value identifying an event source. Equality is
// structural (plain ==): ChildExit carries the exiting child's PID,
// AnyChild carries the waiting parent's PID.
type WaitChannel struct {
	Kind WaitChannelKind
	PID  int
}

// ChildExitChannel builds the wait channel a parent blocks on to wait for
// one specific child.
func ChildExitChannel(childPID int) WaitChannel {
	return WaitChannel{Kind: ChildExit, PID: childPID}
}

// AnyChildChannel builds the wait channel a parent blocks on to wait for
// any child.
func AnyChildChannel(parentPID int) WaitChannel {
	return WaitChannel{Kind: AnyChild, PID: parentPID}
}

// KeyboardChannel is the single wait channel every blocked keyboard read
// parks on.
var KeyboardChannel = WaitChannel{Kind: KeyboardInput}

// StackSize is the fixed kernel-stack allocation spec.md §3 names: 16 KiB,
// 16-byte aligned.
const StackSize = 16 * 1024

// Process is one entry in the process table. Identity (PID) is stable for
// its lifetime; everything else may change, always under the table lock.
type Process struct {
	PID       int
	Name      string
	ParentPID int
	State     State
	Wait      WaitChannel // meaningful only when State == Blocked
	ExitCode  int
	Idle      bool

	Context     *cpu.Context
	StackBase   uint64
	StackSize   uint64
	Descriptors descriptor.Table
	Regions     []MemoryRegion

	// PreemptReturn has room for an interrupted instruction pointer. The
	// preemption path in package sched (RequestPreempt/CheckPreempt) never
	// sets it: a preempted task resumes through its parked goroutine, so
	// this field stays nil.
	PreemptReturn *uint64

	// SliceCount is incremented once per scheduling turn; exposed purely
	// for the diagnostics/fairness tests in spec.md §8 scenario 3-4.
	SliceCount uint64
}

// blockedInvariantHolds reports whether p satisfies invariant 2: a process
// is Blocked iff its wait channel is set.
func (p *Process) blockedInvariantHolds() bool {
	if p.State == Blocked {
		return p.Wait.Kind != NoChannel
	}
	return p.Wait.Kind == NoChannel
}
