package main

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	stateDirName    = "ares"
	transcriptFile  = "transcript.log"
)

// getDefaultTranscriptLocation returns $XDG_STATE_HOME/ares/transcript.log,
// the file `ares run` appends its console transcript to when --log is not
// given. Mirrors arctir-proctor's getDefaultCacheLocation: xdg.* joined with
// a fixed app/file name, never interpolated from user input.
func getDefaultTranscriptLocation() string {
	return filepath.Join(xdg.StateHome, stateDirName, transcriptFile)
}
