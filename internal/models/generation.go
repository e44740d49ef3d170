package models

// GenerationResult is the tagged outcome of one per-unit test generation.
// Exactly one of Text or Reason carries meaning, discriminated by Succeeded.
type GenerationResult struct {
	// Unit is the SourceUnit the generation was attempted for
	Unit SourceUnit `json:"unit"`

	// Succeeded reports whether the collaborator returned usable content
	Succeeded bool `json:"succeeded"`

	// Text is the generated test class body (empty on failure)
	Text string `json:"-"`

	// Reason describes the failure (empty on success)
	Reason string `json:"reason,omitempty"`
}

// Success builds a successful GenerationResult for a unit
func Success(unit SourceUnit, text string) GenerationResult {
	return GenerationResult{Unit: unit, Succeeded: true, Text: text}
}

// Failure builds a failed GenerationResult for a unit
func Failure(unit SourceUnit, reason string) GenerationResult {
	return GenerationResult{Unit: unit, Succeeded: false, Reason: reason}
}

// RunSummary aggregates one generation dispatch run
type RunSummary struct {
	// RunID is a unique, human-friendly identifier for this run
	RunID string `json:"runId"`

	// Requested is the number of units generation was attempted for
	Requested int `json:"requested"`

	// Generated is the number of test classes written successfully
	Generated int `json:"generated"`

	// Failures are the per-unit failures, in unit order
	Failures []GenerationResult `json:"failures,omitempty"`
}
