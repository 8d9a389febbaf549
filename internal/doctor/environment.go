package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LogFileCheck verifies the log file can be created and appended to.
type LogFileCheck struct {
	Path    string // log.file; empty means stderr in plain mode
	TUIPath string // file used by the full-screen dashboard when Path is empty
}

func (c *LogFileCheck) Name() string     { return "log_file" }
func (c *LogFileCheck) Category() string { return CategoryEnvironment }

func (c *LogFileCheck) Run(_ context.Context) CheckResult {
	path := c.Path
	if path == "" {
		path = c.TUIPath
	}
	if path == "" {
		return CheckResult{Status: StatusPass, Message: "Logging to stderr"}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't create log directory: %v", err),
			Suggestion: "Set log.file to a writable location",
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't write log file: %v", err),
			Suggestion: "Set log.file to a writable location",
		}
	}
	_ = f.Close()

	return CheckResult{Status: StatusPass, Message: "Log file: " + path}
}

func (c *LogFileCheck) Fix() error {
	return nil
}

// TerminalCheck reports whether the full-screen dashboard can run and how
// many colors the terminal offers.
type TerminalCheck struct {
	Interactive bool
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return CategoryEnvironment }

func (c *TerminalCheck) Run(_ context.Context) CheckResult {
	if !c.Interactive {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "Not an interactive terminal, sensordash will print plain lines",
			Suggestion: "Run from a terminal for the full-screen dashboard, or pass --plain to silence this",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: "Interactive terminal, " + profileName(lipgloss.ColorProfile()),
	}
}

func (c *TerminalCheck) Fix() error {
	return nil
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "true color"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "no color"
	}
}
