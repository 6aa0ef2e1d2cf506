package exgroup

import "github.com/xraph/exgroup/validate"

// Config holds configuration for the Engine.
type Config struct {
	// DefaultSummary labels the aggregate tree built when a naked
	// (non-aggregate) error enters dispatch.
	DefaultSummary string

	// Policy is the structural rule policy applied by CheckBlock.
	// Nil means all rules are enforced.
	Policy *validate.Policy
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultSummary: "unhandled error",
	}
}
