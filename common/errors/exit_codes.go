package errors

type ExitCode int

const (
	GenericFailureExitCode ExitCode = 1

	// Setup
	ConfigFailureExitCode = 60
	UsageFailureExitCode  = 61

	// Input
	ReadInputFailureExitCode   = 70
	DecodeInputFailureExitCode = 71

	// Snapshotting
	UnsnapshottableExitCode = 80
)
