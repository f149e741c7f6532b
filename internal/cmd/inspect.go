package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/claudestream/internal/logger"
	"github.com/harrison/claudestream/internal/models"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates and returns the inspect subcommand
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <updates.jsonl>...",
		Short: "Summarize a JSON Lines file of stream updates",
		Long: `Read stream updates, one JSON object per line, log each one and print
a summary: updates per type, tool names in call order, the last reported
progress percentage and every error message.

Use "-" to read from standard input; it may be given at most once.
Blank lines are skipped.

Exit code: 0 if every line decodes (and, with --strict, has a known type), 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStdinArgs(args); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			summary := newStreamSummary()
			for _, path := range args {
				if err := inspectPath(path, cmd.InOrStdin(), cfg.MaxLineBytes, cfg.StrictTypes, log, summary); err != nil {
					return err
				}
			}

			summary.Write(cmd.OutOrStdout())
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

// checkStdinArgs rejects more than one "-", since stdin can only be read once.
func checkStdinArgs(args []string) error {
	seen := false
	for _, arg := range args {
		if arg != "-" {
			continue
		}
		if seen {
			return fmt.Errorf("standard input (\"-\") can only be given once")
		}
		seen = true
	}
	return nil
}

// inspectPath opens path ("-" for stdin) and feeds it to inspectStream.
func inspectPath(path string, stdin io.Reader, maxLine int, strict bool, log logger.Logger, summary *streamSummary) error {
	if path == "-" {
		return inspectStream("<stdin>", stdin, maxLine, strict, log, summary)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return inspectStream(path, f, maxLine, strict, log, summary)
}

// inspectStream decodes one StreamUpdate per non-blank line, in order.
func inspectStream(name string, r io.Reader, maxLine int, strict bool, log logger.Logger, summary *streamSummary) error {
	scanner := bufio.NewScanner(r)
	// bufio only enforces max once the buffer outgrows its initial capacity
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var update models.StreamUpdate
		if err := json.Unmarshal(line, &update); err != nil {
			return fmt.Errorf("%s:%d: decode stream update: %w", name, lineNo, err)
		}
		if err := update.Validate(strict); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}

		log.LogStreamUpdate(update)
		summary.Add(update)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: read after line %d: %w", name, lineNo, err)
	}
	return nil
}

// streamSummary accumulates derived values across updates.
type streamSummary struct {
	total     int
	typeOrder []models.UpdateType
	counts    map[models.UpdateType]int
	tools     []string
	progress  *int
	errors    []string
	sessions  []string
}

func newStreamSummary() *streamSummary {
	return &streamSummary{counts: make(map[models.UpdateType]int)}
}

// Add folds one update into the summary.
func (s *streamSummary) Add(u models.StreamUpdate) {
	s.total++
	if _, seen := s.counts[u.Type]; !seen {
		s.typeOrder = append(s.typeOrder, u.Type)
	}
	s.counts[u.Type]++

	s.tools = append(s.tools, u.ToolNames()...)

	if pct, ok := u.ProgressPercentage(); ok {
		s.progress = &pct
	}
	if u.IsError() {
		msg, ok := u.ErrorMessage()
		if !ok {
			msg = "(no message)"
		}
		s.errors = append(s.errors, msg)
	}
	if id, ok := u.SessionID(); ok && !contains(s.sessions, id) {
		s.sessions = append(s.sessions, id)
	}
}

// Write prints the summary in a stable, line-oriented layout.
func (s *streamSummary) Write(w io.Writer) {
	fmt.Fprintf(w, "Updates: %d\n", s.total)
	for _, t := range s.typeOrder {
		label := string(t)
		if !t.IsKnown() {
			label += " (unknown)"
		}
		fmt.Fprintf(w, "  %s: %d\n", label, s.counts[t])
	}

	if len(s.sessions) > 0 {
		fmt.Fprintf(w, "Sessions: %s\n", strings.Join(s.sessions, ", "))
	}
	if len(s.tools) > 0 {
		fmt.Fprintf(w, "Tools: %s\n", strings.Join(s.tools, ", "))
	} else {
		fmt.Fprintln(w, "Tools: none")
	}
	if s.progress != nil {
		fmt.Fprintf(w, "Progress: %d%%\n", *s.progress)
	}

	fmt.Fprintf(w, "Errors: %d\n", len(s.errors))
	for _, msg := range s.errors {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
