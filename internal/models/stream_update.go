package models

import (
	"math"
	"time"
)

// StreamUpdate is one event of a live execution. Which payload matters is
// decided by Type; fields irrelevant to the type may be present and are
// simply ignored. Nil pointer and nil Fields values mean "absent".
type StreamUpdate struct {
	Type            UpdateType `json:"type"`
	Content         *string    `json:"content,omitempty"`           // Text payload, meaning depends on Type
	ToolCalls       []Fields   `json:"tool_calls,omitempty"`        // Assistant tool calls, each may carry "name"
	Metadata        Fields     `json:"metadata,omitempty"`          // Free-form, may carry "is_error"
	Timestamp       *string    `json:"timestamp,omitempty"`         // Emission time, RFC 3339 recommended
	SessionContext  Fields     `json:"session_context,omitempty"`   // Session correlation, e.g. "session_id"
	ExecutionID     *string    `json:"execution_id,omitempty"`      // Execution this update belongs to
	ParentMessageID *string    `json:"parent_message_id,omitempty"` // Parent for threaded conversations
	ErrorInfo       Fields     `json:"error_info,omitempty"`        // Error details, expected to carry "message"
	Progress        Fields     `json:"progress,omitempty"`          // Progress details, expected to carry "percentage"
}

// IsError reports whether the update represents an error, either by type or
// through a truthy metadata "is_error" flag.
func (u *StreamUpdate) IsError() bool {
	if u.Type == UpdateError {
		return true
	}
	if !u.Metadata.present() {
		return false
	}
	flag, ok := u.Metadata.Get("is_error")
	return ok && flag.Truthy()
}

// ErrorMessage returns the error text of the update.
//
// When ErrorInfo is present its "message" is authoritative, even if missing:
// Content is only consulted when there is no ErrorInfo and IsError is true.
func (u *StreamUpdate) ErrorMessage() (string, bool) {
	if u.ErrorInfo.present() {
		msg, ok := u.ErrorInfo.Get("message")
		if !ok || msg.IsNull() {
			return "", false
		}
		return msg.Text(), true
	}
	if u.IsError() && u.Content != nil && *u.Content != "" {
		return *u.Content, true
	}
	return "", false
}

// ToolNames returns the names of the tool calls in order, skipping calls
// without a usable name. The result is never nil.
func (u *StreamUpdate) ToolNames() []string {
	if len(u.ToolCalls) == 0 {
		return []string{}
	}
	return toolNames(u.ToolCalls)
}

// ProgressPercentage returns Progress["percentage"] when it is a number that
// fits in an int. NaN, infinities and out-of-range values are absent.
func (u *StreamUpdate) ProgressPercentage() (int, bool) {
	if !u.Progress.present() {
		return 0, false
	}
	raw, ok := u.Progress.Get("percentage")
	if !ok {
		return 0, false
	}
	pct, ok := raw.AsNumber()
	if !ok || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	if pct < float64(math.MinInt) || pct >= float64(math.MaxInt) {
		return 0, false
	}
	return int(pct), true
}

// SessionID returns SessionContext["session_id"] when it is a non-empty string.
func (u *StreamUpdate) SessionID() (string, bool) {
	v, ok := u.SessionContext.Get("session_id")
	if !ok {
		return "", false
	}
	id, ok := v.AsString()
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Time parses Timestamp as RFC 3339. Missing or unparseable timestamps
// report false.
func (u *StreamUpdate) Time() (time.Time, bool) {
	if u.Timestamp == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, *u.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Validate checks the update's type. Unknown types only fail when strict is
// set; the derivations above accept any type.
func (u *StreamUpdate) Validate(strict bool) error {
	if u.Type == "" {
		return updateFieldError("type", "is required")
	}
	if strict && !u.Type.IsKnown() {
		return updateFieldError("type", "unknown type %q", string(u.Type))
	}
	return nil
}

// Ptr returns a pointer to s, for filling the optional string fields.
func Ptr(s string) *string {
	return &s
}
