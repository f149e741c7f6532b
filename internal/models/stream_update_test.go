package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamUpdate_IsError(t *testing.T) {
	tests := []struct {
		name   string
		update StreamUpdate
		want   bool
	}{
		{
			name:   "error type alone",
			update: StreamUpdate{Type: UpdateError},
			want:   true,
		},
		{
			name: "error type with metadata saying otherwise",
			update: StreamUpdate{
				Type:     UpdateError,
				Metadata: Fields{"is_error": Bool(false)},
			},
			want: true,
		},
		{
			name:   "metadata flag true",
			update: StreamUpdate{Type: UpdateAssistant, Metadata: Fields{"is_error": Bool(true)}},
			want:   true,
		},
		{
			name:   "metadata flag false",
			update: StreamUpdate{Type: UpdateAssistant, Metadata: Fields{"is_error": Bool(false)}},
			want:   false,
		},
		{
			name:   "metadata without flag",
			update: StreamUpdate{Type: UpdateAssistant, Metadata: Fields{"model": String("x")}},
			want:   false,
		},
		{
			name:   "no metadata",
			update: StreamUpdate{Type: UpdateResult},
			want:   false,
		},
		{
			name:   "unknown type is not an error",
			update: StreamUpdate{Type: UpdateType("rate_limit_event")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.IsError())
		})
	}
}

func TestStreamUpdate_ErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		update  StreamUpdate
		want    string
		wantSet bool
	}{
		{
			name: "error info wins over content",
			update: StreamUpdate{
				Type:      UpdateError,
				ErrorInfo: Fields{"message": String("boom")},
				Content:   Ptr("ignored"),
			},
			want:    "boom",
			wantSet: true,
		},
		{
			name:    "falls back to content for error updates",
			update:  StreamUpdate{Type: UpdateError, Content: Ptr("fallback")},
			want:    "fallback",
			wantSet: true,
		},
		{
			name: "falls back to content when metadata flags an error",
			update: StreamUpdate{
				Type:     UpdateToolResult,
				Metadata: Fields{"is_error": Bool(true)},
				Content:  Ptr("tool failed"),
			},
			want:    "tool failed",
			wantSet: true,
		},
		{
			name: "error info without message does not fall back",
			update: StreamUpdate{
				Type:      UpdateError,
				ErrorInfo: Fields{"code": Number(500)},
				Content:   Ptr("not used"),
			},
			wantSet: false,
		},
		{
			name: "null message is absent",
			update: StreamUpdate{
				Type:      UpdateError,
				ErrorInfo: Fields{"message": Null()},
			},
			wantSet: false,
		},
		{
			name:    "content of a non-error update is not a message",
			update:  StreamUpdate{Type: UpdateAssistant, Content: Ptr("hello")},
			wantSet: false,
		},
		{
			name:    "empty content is absent",
			update:  StreamUpdate{Type: UpdateError, Content: Ptr("")},
			wantSet: false,
		},
		{
			name: "non-string message is rendered as text",
			update: StreamUpdate{
				Type:      UpdateError,
				ErrorInfo: Fields{"message": Number(404)},
			},
			want:    "404",
			wantSet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.update.ErrorMessage()
			assert.Equal(t, tt.wantSet, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreamUpdate_ToolNames(t *testing.T) {
	t.Run("skips entries without a name and keeps order", func(t *testing.T) {
		u := StreamUpdate{
			Type: UpdateAssistant,
			ToolCalls: []Fields{
				{"name": String("search")},
				{"other": String("x")},
				{"name": String("fetch")},
			},
		}
		assert.Equal(t, []string{"search", "fetch"}, u.ToolNames())
	})

	t.Run("empty and null names are skipped", func(t *testing.T) {
		u := StreamUpdate{
			Type: UpdateAssistant,
			ToolCalls: []Fields{
				{"name": String("")},
				{"name": Null()},
				nil,
				{"name": String("Bash")},
			},
		}
		assert.Equal(t, []string{"Bash"}, u.ToolNames())
	})

	t.Run("absent tool calls yield an empty slice", func(t *testing.T) {
		u := StreamUpdate{Type: UpdateAssistant}
		names := u.ToolNames()
		require.NotNil(t, names)
		assert.Empty(t, names)
	})
}

func TestStreamUpdate_ProgressPercentage(t *testing.T) {
	tests := []struct {
		name    string
		update  StreamUpdate
		want    int
		wantSet bool
	}{
		{
			name:    "percentage present",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"percentage": Number(42)}},
			want:    42,
			wantSet: true,
		},
		{
			name:    "no progress field",
			update:  StreamUpdate{Type: UpdateProgress},
			wantSet: false,
		},
		{
			name:    "progress without percentage",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"step": String("lint")}},
			wantSet: false,
		},
		{
			name:    "zero percent is still reported",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"percentage": Number(0)}},
			want:    0,
			wantSet: true,
		},
		{
			name:    "fraction is truncated",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"percentage": Number(99.9)}},
			want:    99,
			wantSet: true,
		},
		{
			name:    "non-numeric percentage is absent",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"percentage": String("half")}},
			wantSet: false,
		},
		{
			name:    "percentage beyond int range is absent",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"percentage": Number(1e19)}},
			wantSet: false,
		},
		{
			name:    "huge negative percentage is absent",
			update:  StreamUpdate{Type: UpdateProgress, Progress: Fields{"percentage": Number(-1e300)}},
			wantSet: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.update.ProgressPercentage()
			assert.Equal(t, tt.wantSet, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreamUpdate_ProgressPercentageFromJSON(t *testing.T) {
	var u StreamUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"type":"progress","progress":{"percentage":1e300}}`), &u))

	pct, ok := u.ProgressPercentage()
	assert.False(t, ok)
	assert.Equal(t, 0, pct)
}

func TestStreamUpdate_SessionIDAndTime(t *testing.T) {
	u := StreamUpdate{
		Type:           UpdateSystem,
		SessionContext: Fields{"session_id": String("sess-1")},
		Timestamp:      Ptr("2025-03-01T10:20:30Z"),
	}

	id, ok := u.SessionID()
	require.True(t, ok)
	assert.Equal(t, "sess-1", id)

	ts, ok := u.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC), ts)

	bad := StreamUpdate{Type: UpdateSystem, Timestamp: Ptr("yesterday")}
	_, ok = bad.Time()
	assert.False(t, ok)
	_, ok = bad.SessionID()
	assert.False(t, ok)
}

func TestStreamUpdate_Validate(t *testing.T) {
	assert.NoError(t, (&StreamUpdate{Type: UpdateResult}).Validate(true))
	assert.NoError(t, (&StreamUpdate{Type: "stream_event"}).Validate(false))

	err := (&StreamUpdate{Type: "stream_event"}).Validate(true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUpdate)

	var fieldErr *FieldError
	require.ErrorAs(t, (&StreamUpdate{}).Validate(false), &fieldErr)
	assert.Equal(t, "type", fieldErr.Field)
}

func TestStreamUpdate_DecodeJSONLine(t *testing.T) {
	line := `{"type":"assistant","content":"looking","tool_calls":[{"name":"Read","input":{"path":"go.mod"}},{"id":"t2"}],"metadata":{"is_error":false},"execution_id":"exec-9"}`

	var u StreamUpdate
	require.NoError(t, json.Unmarshal([]byte(line), &u))

	assert.Equal(t, UpdateAssistant, u.Type)
	require.NotNil(t, u.Content)
	assert.Equal(t, "looking", *u.Content)
	assert.Equal(t, []string{"Read"}, u.ToolNames())
	assert.False(t, u.IsError())
	assert.Nil(t, u.ErrorInfo)
	assert.Nil(t, u.Progress)
	require.NotNil(t, u.ExecutionID)
	assert.Equal(t, "exec-9", *u.ExecutionID)

	input, ok := u.ToolCalls[0].Get("input")
	require.True(t, ok)
	nested, ok := input.AsMap()
	require.True(t, ok)
	path, _ := nested.Get("path")
	assert.Equal(t, "go.mod", path.Text())

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "error_info")
	assert.NotContains(t, string(out), "progress")
}
