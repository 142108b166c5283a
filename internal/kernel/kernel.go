// Package kernel wires components C1-C8 together into one running system:
// the process table, scheduler, device registry, syscall dispatcher, and
// timer. spec.md names each component separately but requires (§9) that
// the global mutable state they otherwise share be owned by explicit,
// init/teardown-able singletons rather than ambient package state.
//
// Grounded on the Orizon runtime's GlobalTimerManager/GlobalInterruptManager
// style (one struct per subsystem, an Initialize* that refuses to run
// twice), adapted from package-level globals to fields on a Kernel value so
// more than one kernel can exist in a test process at once.
package kernel

import (
	"fmt"
	"time"

	"github.com/tuttlem/ares/internal/cpu"
	"github.com/tuttlem/ares/internal/device"
	"github.com/tuttlem/ares/internal/proc"
	"github.com/tuttlem/ares/internal/sched"
	"github.com/tuttlem/ares/internal/syscall"
	"github.com/tuttlem/ares/internal/timer"
)

// PreemptSliceTicks is the default PREEMPT_SLICE_TICKS (spec.md §9).
const PreemptSliceTicks = 4

// DefaultTickInterval is the simulated vector-32 IRQ rate when none is
// given: fast enough that a non-yielding task is still preempted within a
// human-observable `ares run`, slow enough not to spin a core for nothing.
const DefaultTickInterval = 10 * time.Millisecond

// syscallEntryAddr stands in for the real kernel's syscall-entry symbol
// programmed into IA32_LSTAR at boot: a canonical higher-half kernel
// address, since no linker script or real memory map backs this simulated
// boot path.
const syscallEntryAddr = 0xffffffff80000000

// Config tunes the two knobs cmd/ares exposes as --slice and --ticks: how
// many ticks make up a preempt slice, and how often Tick() fires on its
// own. A zero TickInterval disables the background ticker goroutine
// entirely, leaving Tick() to be driven by hand — what kernel-level tests
// that need deterministic tick timing want.
type Config struct {
	PreemptSliceTicks int
	TickInterval      time.Duration
}

// DefaultConfig returns spec.md §9's default preempt slice plus
// DefaultTickInterval.
func DefaultConfig() Config {
	return Config{PreemptSliceTicks: PreemptSliceTicks, TickInterval: DefaultTickInterval}
}

// Kernel holds every C1-C8 singleton as a field. The zero value is not
// usable; build one with New and call Init before spawning anything.
type Kernel struct {
	Table      *proc.Table
	Scheduler  *sched.Scheduler
	Registry   *device.Registry
	Dispatcher *syscall.Dispatcher
	Timer      *timer.Timer
	MSRs       *cpu.MSRBank

	initialized bool
	stopTicker  chan struct{}
}

// New constructs a Kernel with a real keyboard and console already
// registered. Call Init once before use.
func New() *Kernel {
	return &Kernel{
		Registry: device.NewRegistry(device.NewKeyboard(), device.NewConsole()),
	}
}

// Init wires the table, scheduler, dispatcher, timer, and MSR bank
// together, spawns the idle process, and — when cfg.TickInterval is
// positive — starts the goroutine that calls Tick() on its own. That
// goroutine is the host process's stand-in for the periodic vector-32 IRQ a
// real timer chip raises: without it, nothing ever advances ticks or polls
// the preempt flag, so a CPU-bound task that never calls Yield would simply
// run forever once booted. Returns an error if called twice, matching the
// teacher pack's Initialize* convention of refusing double-init rather than
// silently resetting state out from under a running system.
func (k *Kernel) Init(cfg Config) error {
	if k.initialized {
		return fmt.Errorf("kernel: already initialized")
	}
	if cfg.PreemptSliceTicks < 1 {
		cfg.PreemptSliceTicks = PreemptSliceTicks
	}

	k.Table = proc.NewTable()
	k.Scheduler = sched.New(k.Table, cfg.PreemptSliceTicks)
	k.Dispatcher = syscall.New(k.Table, k.Scheduler)
	k.Timer = timer.New(k.Scheduler, k.Table, cfg.PreemptSliceTicks)

	k.MSRs = cpu.NewMSRBank()
	k.MSRs.InitSyscallMSRs(syscallEntryAddr)

	k.Table.SpawnIdle(k.Registry)
	k.initialized = true

	if cfg.TickInterval > 0 {
		k.stopTicker = make(chan struct{})
		go k.driveTicks(cfg.TickInterval)
	}
	return nil
}

// driveTicks calls Tick() once per interval until Shutdown closes
// stopTicker. Only started by Init when cfg.TickInterval > 0.
func (k *Kernel) driveTicks(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			k.Tick()
		case <-k.stopTicker:
			return
		}
	}
}

// Shutdown stops the background tick-driving goroutine started by Init, if
// Init started one. Safe to call more than once. A Kernel that is never
// shut down just leaks that goroutine until the process exits, the same way
// a real kernel's timer interrupt runs until power-off.
func (k *Kernel) Shutdown() {
	if k.stopTicker == nil {
		return
	}
	close(k.stopTicker)
	k.stopTicker = nil
}

// Boot spawns a kernel task named name running entry, bound to this
// kernel's dispatcher, and makes it the Running process. Init must have
// been called first.
func (k *Kernel) Boot(name string, entry proc.EntryFunc) (*proc.Process, error) {
	if !k.initialized {
		return nil, fmt.Errorf("kernel: Boot called before Init")
	}
	p := k.Table.SpawnKernel(name, entry, k.Registry, k.Dispatcher)

	g := k.Table.Lock()
	if prev := k.Table.Lookup(k.Table.CurrentPID()); prev != nil && prev.State == proc.Running {
		prev.State = proc.Ready
	}
	k.Table.SetCurrentPID(p.PID)
	p.State = proc.Running
	k.Table.Unlock(g)

	cpu.Default.Resume(p.Context)
	return p, nil
}

// Tick drives one timer interrupt, the host process's stand-in for the
// vector-32 IRQ spec.md describes. Called automatically by the goroutine
// Init starts when cfg.TickInterval > 0; kernel-level tests that need
// deterministic timing instead disable that goroutine (TickInterval == 0)
// and call Tick directly.
func (k *Kernel) Tick() {
	k.Timer.OnTick()
}

// PushKey feeds one byte into the keyboard device and wakes any reader
// blocked on KeyboardInput, the way a real keyboard IRQ handler both
// enqueues the scancode and calls wake_channel.
func (k *Kernel) PushKey(b byte) {
	kbd := k.Registry.Keyboard().(*device.Keyboard)
	kbd.Push(b)
	k.Table.WakeChannel(proc.KeyboardChannel)
}

// ConsoleTranscript returns everything written to the console device so
// far, for tests and the `ares run` CLI output.
func (k *Kernel) ConsoleTranscript() string {
	return k.Registry.Console().(*device.Console).Transcript()
}
