// Package exitcodes defines the process exit codes of the CLI.
package exitcodes

const (
	Success         = 0
	GeneralError    = 1
	UsageError      = 2
	ConfigError     = 3
	ValidationError = 4
	NetworkError    = 5
	GenerationError = 6
)
