package main

import "github.com/spf13/cobra"

var aresCmd = &cobra.Command{
	Use:   "ares",
	Short: "Boot and drive the Ares process core from the command line.",
	Run:   runAres,
}

var runCmd = &cobra.Command{
	Use:     "run [echo]",
	Aliases: []string{"r"},
	Short:   "Boot a kernel task and feed it keystrokes, scripted or live.",
	Run:     runRun,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the process table (registers, stack, descriptors, regions) for a freshly booted kernel.",
	Run:   runDump,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-state process counts and per-process slice counts for a freshly booted kernel.",
	Run:   runStats,
}

// SetupCLI constructs the cobra hierarchy for the ares CLI.
func SetupCLI() *cobra.Command {
	aresCmd.AddCommand(runCmd)
	aresCmd.AddCommand(dumpCmd)
	aresCmd.AddCommand(statsCmd)
	return aresCmd
}
