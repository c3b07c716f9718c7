// Package constants defines application-wide constants for clinspect.
// All constants are typed to ensure type safety and prevent accidental misuse.
package constants

// Application metadata
const (
	// AppName is the application name used in logs, configs, and user messages.
	AppName string = "clinspect"
	// AppDescription is a short description of the application.
	AppDescription string = "OpenCL platform and device capability inspector"
)

// ExitCode represents process exit codes for different termination scenarios.
type ExitCode int

const (
	// ExitSuccess indicates the report was produced in full.
	ExitSuccess ExitCode = iota
	// ExitError indicates a general error occurred.
	ExitError
	// ExitValidation indicates invalid flags or configuration.
	ExitValidation
	// ExitEnumeration indicates platforms or devices could not be listed.
	ExitEnumeration
	// ExitOutOfMemory indicates a property buffer could not grow.
	ExitOutOfMemory
)

// Int returns the exit code as an int for use with os.Exit().
func (e ExitCode) Int() int {
	return int(e)
}

// ConfigFileName is the configuration file name inside the config dir.
const ConfigFileName string = "config.yaml"
