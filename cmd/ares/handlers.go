package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tuttlem/ares/internal/kernel"
	"github.com/tuttlem/ares/internal/proc"
)

// runAres defines what should occur when `ares` is run with no subcommand.
func runAres(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		cmd.Help()
		os.Exit(0)
	}
}

// echoEntry is spec.md §8 scenario 1: read one byte, write it back, until a
// Ctrl-D byte or a read/write error ends the task. Used by both the
// scripted and interactive run modes.
func echoEntry(done chan<- struct{}) proc.EntryFunc {
	return func(rt proc.Runtime) {
		buf := make([]byte, 1)
		for {
			n, err := rt.Read(0, buf)
			if err != nil {
				close(done)
				rt.Exit(1)
			}
			if n == 0 {
				continue
			}
			if buf[0] == 0x04 { // Ctrl-D: end of scripted/interactive session
				close(done)
				rt.Exit(0)
			}
			if _, err := rt.Write(1, buf[:n]); err != nil {
				close(done)
				rt.Exit(1)
			}
		}
	}
}

// runRun defines the behavior of `ares run [echo]`.
func runRun(cmd *cobra.Command, args []string) {
	fs := cmd.Flags()
	interactive, _ := fs.GetBool(interactiveFlag)
	input, _ := fs.GetString(inputFlag)
	wantDump, _ := fs.GetBool(dumpFlag)
	wantStats, _ := fs.GetBool(statsFlag)
	logPath, _ := fs.GetString(logFlag)
	tickInterval, _ := fs.GetDuration(ticksFlag)
	sliceTicks, _ := fs.GetInt(sliceFlag)
	if logPath == "" {
		logPath = getDefaultTranscriptLocation()
	}

	k := kernel.New()
	cfg := kernel.Config{PreemptSliceTicks: sliceTicks, TickInterval: tickInterval}
	if err := k.Init(cfg); err != nil {
		outputErrorAndFail(fmt.Sprintf("kernel init failed: %s", err))
	}
	defer k.Shutdown()

	done := make(chan struct{})
	if _, err := k.Boot("echo", echoEntry(done)); err != nil {
		outputErrorAndFail(fmt.Sprintf("boot failed: %s", err))
	}

	if interactive {
		runInteractive(k, done)
	} else {
		for _, b := range []byte(input) {
			k.PushKey(b)
		}
		k.PushKey(0x04)
		<-done
	}

	transcript := k.ConsoleTranscript()
	output([]byte(transcript))
	appendTranscript(logPath, transcript)

	if wantDump {
		proc.DumpAll(k.Table, os.Stdout)
	}
	if wantStats {
		proc.SchedulerStats(k.Table, os.Stdout)
	}
}

// runDump defines the behavior of `ares dump`: boots a bare kernel (idle
// only, no tasks) and dumps its process table, exercising proc.DumpAll as a
// standalone CLI verb.
func runDump(cmd *cobra.Command, args []string) {
	k := kernel.New()
	if err := k.Init(kernel.Config{}); err != nil {
		outputErrorAndFail(fmt.Sprintf("kernel init failed: %s", err))
	}
	defer k.Shutdown()
	proc.DumpAll(k.Table, os.Stdout)
}

// runStats defines the behavior of `ares stats`: boots a bare kernel and
// shows its scheduler stats, exercising proc.SchedulerStats as a standalone
// CLI verb.
func runStats(cmd *cobra.Command, args []string) {
	k := kernel.New()
	if err := k.Init(kernel.Config{}); err != nil {
		outputErrorAndFail(fmt.Sprintf("kernel init failed: %s", err))
	}
	defer k.Shutdown()
	proc.SchedulerStats(k.Table, os.Stdout)
}

func output(out []byte) {
	fmt.Printf("%s", out)
}

func outputErrorAndFail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func appendTranscript(path, transcript string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	f.WriteString(transcript)
}
