//go:build unix

package cli

import (
	"os"
	"syscall"
)

// Ctrl+Z pauses the simulation instead of stopping the process.
var pauseSignals = []os.Signal{syscall.SIGTSTP}
