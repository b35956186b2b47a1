// Package version holds the packaging metadata of the application.
package version

import "runtime"

var (
	// AppName is the name of the application.
	AppName = "mlops-scaffold"
	// Author is the maintainer of the application.
	Author = "Anshika"
	// Version is dynamically set by the ci or overridden with -ldflags.
	Version = "0.1"
	// BuildDate is dynamically set at build time. YYYY-MM-DD
	BuildDate = ""
)

// ServiceVersionInformation returns the version, build date when known, and
// the Go runtime version.
func ServiceVersionInformation() string {
	outputString := Version
	if BuildDate != "" {
		outputString += " (" + BuildDate + ")"
	}

	return outputString + ", Go Version: " + runtime.Version()
}
