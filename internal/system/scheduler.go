package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

const (
	DefaultStatusCommand = "systemctl"
	DefaultStatusSkip    = 7
	DefaultStatusTake    = 10
)

var DefaultStatusArgs = []string{"status", "--no-pager"}

var (
	// ErrStatusDecode is returned when the status command prints non UTF-8 output
	ErrStatusDecode = errors.New("status output is not valid UTF-8")
	// ErrStatusWindow is returned for a negative skip or a non-positive take
	ErrStatusWindow = errors.New("invalid status line window")
)

// SchedulerStatusProvider returns the lines surfaced in the scheduler pane
type SchedulerStatusProvider interface {
	StatusLines(ctx context.Context) ([]string, error)
}

// CommandStatus runs an external status command and keeps a fixed window of
// its output. The window assumes the header layout of `systemctl status`;
// other formats are not detected.
type CommandStatus struct {
	Command string
	Args    []string
	Skip    int
	Take    int
}

// NewCommandStatus returns a provider for `systemctl status` keeping lines [7:17]
func NewCommandStatus() *CommandStatus {
	return &CommandStatus{
		Command: DefaultStatusCommand,
		Args:    append([]string(nil), DefaultStatusArgs...),
		Skip:    DefaultStatusSkip,
		Take:    DefaultStatusTake,
	}
}

// Validate checks the command and the line window
func (c *CommandStatus) Validate() error {
	if c.Command == "" {
		return errors.New("status command is empty")
	}
	if c.Skip < 0 || c.Take <= 0 {
		return fmt.Errorf("%w: skip=%d take=%d", ErrStatusWindow, c.Skip, c.Take)
	}
	return nil
}

// StatusLines runs the command and returns its output window
func (c *CommandStatus) StatusLines(ctx context.Context) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out, err := exec.CommandContext(ctx, c.Command, c.Args...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", c.Command, err)
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("failed to decode %s output: %w", c.Command, ErrStatusDecode)
	}
	return WindowLines(string(out), c.Skip, c.Take), nil
}

// WindowLines splits text on newlines and returns at most take lines starting at skip.
// A negative skip or non-positive take yields no lines.
func WindowLines(text string, skip, take int) []string {
	lines := strings.Split(text, "\n")
	if skip < 0 || skip >= len(lines) || take <= 0 {
		return []string{}
	}
	lines = lines[skip:]
	if len(lines) > take {
		lines = lines[:take]
	}
	return lines
}
