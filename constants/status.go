package constants

// RunStatus is the canonical per-file outcome reported by the batch runner.
type RunStatus string

// Stable values (these exact strings appear in summary reports).
const (
	RunStatusSuccess      RunStatus = "SUCCESS"
	RunStatusWithWarnings RunStatus = "SUCCESS_WITH_WARNINGS"
	RunStatusFailed       RunStatus = "FAILED"
)
