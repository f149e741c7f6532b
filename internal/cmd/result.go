package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/claudestream/internal/models"
	"github.com/spf13/cobra"
)

// NewResultCommand creates and returns the result subcommand
func NewResultCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result <result.json>",
		Short: "Validate and summarize an execution result",
		Long: `Read one execution result JSON document, check its field contract
(non-negative cost, duration and turns; error_type only on failed results)
and print its summary.

Exit code: 0 if the result is valid, 1 otherwise`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result, err := readResult(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := result.Validate(); err != nil {
				return err
			}

			newLogger(cfg, cmd.ErrOrStderr()).LogExecutionResult(*result)
			writeResultSummary(cmd.OutOrStdout(), result)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

// readResult decodes an ExecutionResult from path ("-" for stdin).
func readResult(path string, stdin io.Reader) (*models.ExecutionResult, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode execution result: %w", err)
	}
	if result.ToolsUsed == nil {
		result.ToolsUsed = []models.Fields{}
	}
	return &result, nil
}

func writeResultSummary(w io.Writer, r *models.ExecutionResult) {
	status := "success"
	if r.IsError {
		status = "error"
		if kind, ok := r.ErrorKind(); ok {
			status += " (" + kind + ")"
		}
	}

	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintf(w, "Session: %s\n", r.SessionID)
	fmt.Fprintf(w, "Turns: %d\n", r.NumTurns)
	fmt.Fprintf(w, "Cost: $%.4f\n", r.Cost)
	fmt.Fprintf(w, "Duration: %s\n", r.Duration())
	if names := r.ToolNames(); len(names) > 0 {
		fmt.Fprintf(w, "Tools: %s\n", strings.Join(names, ", "))
	} else {
		fmt.Fprintln(w, "Tools: none")
	}
}
