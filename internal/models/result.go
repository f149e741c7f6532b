package models

import "time"

// ExecutionResult is the final outcome of one assistant invocation.
// It is built once by the execution layer and not modified afterwards.
type ExecutionResult struct {
	Content    string   `json:"content"`              // Final textual output
	SessionID  string   `json:"session_id"`           // Conversation/session correlation ID
	Cost       float64  `json:"cost"`                 // USD cost of the invocation
	DurationMS int64    `json:"duration_ms"`          // Wall-clock execution time
	NumTurns   int      `json:"num_turns"`            // Conversational turns taken
	IsError    bool     `json:"is_error"`             // Whether the invocation failed
	ErrorType  *string  `json:"error_type,omitempty"` // Failure class, only meaningful when IsError
	ToolsUsed  []Fields `json:"tools_used"`           // Tool invocations in invocation order
}

// NewExecutionResult creates a successful ExecutionResult with no error type
// and an empty tool list.
func NewExecutionResult(content, sessionID string, cost float64, durationMS int64, numTurns int) ExecutionResult {
	return ExecutionResult{
		Content:    content,
		SessionID:  sessionID,
		Cost:       cost,
		DurationMS: durationMS,
		NumTurns:   numTurns,
		ToolsUsed:  []Fields{},
	}
}

// Validate checks the result against its field contract. A populated
// ErrorType on a successful result is reported as a caller error.
func (r *ExecutionResult) Validate() error {
	if r.Cost < 0 {
		return resultFieldError("cost", "must be >= 0, got %v", r.Cost)
	}
	if r.DurationMS < 0 {
		return resultFieldError("duration_ms", "must be >= 0, got %d", r.DurationMS)
	}
	if r.NumTurns < 0 {
		return resultFieldError("num_turns", "must be >= 0, got %d", r.NumTurns)
	}
	if !r.IsError && r.ErrorType != nil {
		return resultFieldError("error_type", "set to %q but is_error is false", *r.ErrorType)
	}
	return nil
}

// Duration returns DurationMS as a time.Duration.
func (r *ExecutionResult) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// ErrorKind returns the error type of a failed result. Successful results
// report no error type even when ErrorType was populated.
func (r *ExecutionResult) ErrorKind() (string, bool) {
	if !r.IsError || r.ErrorType == nil {
		return "", false
	}
	return *r.ErrorType, true
}

// ToolNames returns the names of the tools used, in invocation order.
// Entries without a usable name are skipped.
func (r *ExecutionResult) ToolNames() []string {
	return toolNames(r.ToolsUsed)
}

// toolNames collects the truthy "name" of each call, skipping the rest.
func toolNames(calls []Fields) []string {
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		name, ok := call.Get("name")
		if !ok || !name.Truthy() {
			continue
		}
		names = append(names, name.Text())
	}
	return names
}
