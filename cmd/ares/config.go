package main

import "github.com/tuttlem/ares/internal/kernel"

const (
	interactiveFlag = "interactive"
	inputFlag       = "input"
	dumpFlag        = "dump"
	statsFlag       = "stats"
	logFlag         = "log"
	ticksFlag       = "ticks"
	sliceFlag       = "slice"
)

// CLI flags to initialize.
func init() {
	runCmd.Flags().Bool(interactiveFlag, false, "Bridge real host keystrokes (raw terminal mode) into the simulated keyboard device instead of a scripted input string.")
	runCmd.Flags().String(inputFlag, "hi\n", "Bytes to feed through the keyboard device when not running interactively.")
	runCmd.Flags().Bool(dumpFlag, false, "Dump full process-table diagnostics once the scenario finishes.")
	runCmd.Flags().Bool(statsFlag, false, "Show scheduler stats once the scenario finishes.")
	runCmd.Flags().String(logFlag, "", "Path to append the console transcript to. Defaults to the XDG state directory.")
	runCmd.Flags().Duration(ticksFlag, kernel.DefaultTickInterval, "Simulated timer-interrupt rate. 0 disables the background ticker entirely, so nothing is ever preempted.")
	runCmd.Flags().Int(sliceFlag, kernel.PreemptSliceTicks, "Preempt slice length in ticks (PREEMPT_SLICE_TICKS). Must be >= 1.")
}
