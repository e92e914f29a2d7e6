package main

import (
	"fmt"
	"runtime"
)

// Version information - updated by build process
var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// GetVersionInfo returns formatted version information
func GetVersionInfo() string {
	return fmt.Sprintf(`nlterm %s
Git Commit: %s
Build Date: %s
Go Version: %s
Platform: %s/%s`, Version, GitCommit, BuildDate, GoVersion, runtime.GOOS, runtime.GOARCH)
}

// GetVersionShort returns just the version string
func GetVersionShort() string {
	return Version
}
