package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/claudestream/internal/models"
	"github.com/spf13/cobra"
)

// NewSampleCommand creates and returns the sample subcommand
func NewSampleCommand() *cobra.Command {
	var executionID string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write an example stream of updates as JSON Lines",
		Long: `Write a short, representative stream (system, assistant with tool calls,
tool_result, progress, result) to standard output. Pipe it into
"claudestream inspect -" to see every derived value in action.

Execution and session IDs are random UUIDs unless given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if executionID == "" {
				executionID = uuid.New().String()
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
			}
			updates := sampleUpdates(executionID, sessionID, time.Now().UTC())
			return writeUpdates(cmd.OutOrStdout(), updates)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&executionID, "execution-id", "", "Execution ID to stamp on every update")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID to put in session_context")

	return cmd
}

// sampleUpdates builds one execution's worth of updates starting at start.
func sampleUpdates(executionID, sessionID string, start time.Time) []models.StreamUpdate {
	session := models.Fields{"session_id": models.String(sessionID)}
	at := func(offset time.Duration) *string {
		return models.Ptr(start.Add(offset).Format(time.RFC3339Nano))
	}
	assistantID := uuid.New().String()

	return []models.StreamUpdate{
		{
			Type:           models.UpdateSystem,
			Content:        models.Ptr("session initialized"),
			Timestamp:      at(0),
			SessionContext: session,
			ExecutionID:    models.Ptr(executionID),
		},
		{
			Type:    models.UpdateAssistant,
			Content: models.Ptr("Reading the module file first."),
			ToolCalls: []models.Fields{
				{"name": models.String("Read"), "input": models.Map(models.Fields{"file_path": models.String("go.mod")})},
				{"name": models.String("Grep"), "input": models.Map(models.Fields{"pattern": models.String("func main")})},
			},
			Metadata:       models.Fields{"message_id": models.String(assistantID)},
			Timestamp:      at(800 * time.Millisecond),
			SessionContext: session,
			ExecutionID:    models.Ptr(executionID),
		},
		{
			Type:            models.UpdateToolResult,
			Content:         models.Ptr("no matches"),
			Metadata:        models.Fields{"is_error": models.Bool(true), "tool": models.String("Grep")},
			Timestamp:       at(1200 * time.Millisecond),
			SessionContext:  session,
			ExecutionID:     models.Ptr(executionID),
			ParentMessageID: models.Ptr(assistantID),
		},
		{
			Type:           models.UpdateProgress,
			Progress:       models.Fields{"percentage": models.Number(50), "step": models.String("analysis")},
			Timestamp:      at(1500 * time.Millisecond),
			SessionContext: session,
			ExecutionID:    models.Ptr(executionID),
		},
		{
			Type:           models.UpdateProgress,
			Progress:       models.Fields{"percentage": models.Number(100), "step": models.String("done")},
			Timestamp:      at(2 * time.Second),
			SessionContext: session,
			ExecutionID:    models.Ptr(executionID),
		},
		{
			Type:           models.UpdateResult,
			Content:        models.Ptr("The module declares a single main package."),
			Metadata:       models.Fields{"num_turns": models.Number(2), "cost": models.Number(0.0132)},
			Timestamp:      at(2100 * time.Millisecond),
			SessionContext: session,
			ExecutionID:    models.Ptr(executionID),
		},
	}
}

// writeUpdates encodes updates as JSON Lines.
func writeUpdates(w io.Writer, updates []models.StreamUpdate) error {
	enc := json.NewEncoder(w)
	for i, u := range updates {
		if err := enc.Encode(u); err != nil {
			return fmt.Errorf("encode update %d: %w", i, err)
		}
	}
	return nil
}
