package debug

import (
	"log"
	"os"
)

// buildFlag is set via ldflags for debug builds
var buildFlag = ""

// Enabled controls whether debug messages are printed
var Enabled = buildFlag == "true" || os.Getenv("SUNUM2_DEBUG") == "1"

// Log prints a debug message if debug mode is enabled
func Log(format string, args ...any) {
	if Enabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}
