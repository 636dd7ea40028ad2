// Package version carries the build identity stamped into the binary.
// Release builds override the vars with -ldflags; a plain go build
// yields a dev-stamped binary.
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "0.0.0-dev"                           // release tag, ex: 1.2.0
	Commit    = "unknown"                             // short git hash
	BuildDate = time.Now().UTC().Format(time.RFC3339) // release builds stamp the real build instant
	GoVersion = runtime.Version()
)

// String renders the one-line identity used in startup logs.
func String() string {
	return fmt.Sprintf("revisitly %s (commit=%s, built=%s, %s)", Version, Commit, BuildDate, GoVersion)
}
