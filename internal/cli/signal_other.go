//go:build !unix

package cli

import "os"

var pauseSignals = []os.Signal{os.Interrupt}
