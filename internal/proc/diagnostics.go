package proc

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
)

// dumpConfig matches the teacher's preference for deterministic,
// single-line-per-field diagnostic output (serialize.go): no pointer
// addresses, no method output, just the struct's own fields.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableMethods:          true,
	SortKeys:                true,
}

// DumpProcess writes a register/stack/descriptor/region dump for pid to w,
// the way the teacher logs CPU state on a fault. Returns an error only if
// pid does not exist.
func DumpProcess(t *Table, w io.Writer, pid int) error {
	p := t.Lookup(pid)
	if p == nil {
		return fmt.Errorf("proc: no such process %d", pid)
	}

	fmt.Fprintf(w, "process %d (%s) state=%s parent=%d idle=%t\n",
		p.PID, p.Name, p.State, p.ParentPID, p.Idle)
	fmt.Fprintf(w, "  stack: base=%#x size=%d\n", p.StackBase, p.StackSize)
	if p.State == Blocked {
		fmt.Fprintf(w, "  blocked on: %+v\n", p.Wait)
	}
	if p.State == Zombie {
		fmt.Fprintf(w, "  exit code: %d\n", p.ExitCode)
	}
	fmt.Fprintf(w, "  context:\n%s", dumpConfig.Sdump(p.Context))
	fmt.Fprintf(w, "  regions:\n%s", dumpConfig.Sdump(p.Regions))
	return nil
}

// DumpAll writes a DumpProcess entry for every process in the table, in
// PID order, plus the per-state counts scheduler_stats() tests assert on.
func DumpAll(t *Table, w io.Writer) {
	procs := t.All()
	for _, p := range procs {
		DumpProcess(t, w, p.PID)
	}
	SchedulerStats(t, w)
}

// SchedulerStats renders per-state process counts and each process's
// observed scheduling slice count as a table, the way arctir-proctor's CLI
// renders process listings.
func SchedulerStats(t *Table, w io.Writer) {
	counts := t.CountByState()
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"state", "count"})
	for _, s := range []State{Ready, Running, Blocked, Zombie} {
		table.Append([]string{s.String(), strconv.Itoa(counts[s])})
	}
	table.Render()

	slices := tablewriter.NewWriter(w)
	slices.SetHeader([]string{"pid", "name", "state", "slices"})
	for _, p := range t.All() {
		slices.Append([]string{
			strconv.Itoa(p.PID),
			p.Name,
			p.State.String(),
			strconv.FormatUint(p.SliceCount, 10),
		})
	}
	slices.Render()
}
