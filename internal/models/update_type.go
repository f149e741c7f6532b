package models

// UpdateType classifies a StreamUpdate. The set below is closed, but values
// outside it are carried verbatim rather than rejected so newer producers do
// not break older consumers.
type UpdateType string

// Stream update types
const (
	UpdateAssistant  UpdateType = "assistant"   // Assistant message, may carry tool calls
	UpdateUser       UpdateType = "user"        // User message or tool input echo
	UpdateSystem     UpdateType = "system"      // Session/system notice
	UpdateResult     UpdateType = "result"      // Final result of the execution
	UpdateToolResult UpdateType = "tool_result" // Output of a tool call
	UpdateError      UpdateType = "error"       // The update itself reports a failure
	UpdateProgress   UpdateType = "progress"    // Progress report with a percentage
)

var knownUpdateTypes = []UpdateType{
	UpdateAssistant,
	UpdateUser,
	UpdateSystem,
	UpdateResult,
	UpdateToolResult,
	UpdateError,
	UpdateProgress,
}

// KnownUpdateTypes returns the closed set of update types in declaration order.
func KnownUpdateTypes() []UpdateType {
	out := make([]UpdateType, len(knownUpdateTypes))
	copy(out, knownUpdateTypes)
	return out
}

// IsKnown reports whether t belongs to the closed set.
func (t UpdateType) IsKnown() bool {
	for _, known := range knownUpdateTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the raw type string.
func (t UpdateType) String() string {
	return string(t)
}
