package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sensordash/internal/doctor"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/sensors"
	"github.com/rileyhilliard/sensordash/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doctorJSON bool
	doctorFix  bool
)

// doctorCmd diagnoses config, server and terminal issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config, server and terminal issues",
	Long: `Run diagnostic checks to find out why the dashboard shows nothing.

Checks:
  - Config file presence and validity
  - Sensor server reachability
  - Payload shape (non-empty, matching series)
  - Log file and terminal capabilities

Examples:
  sensordash doctor
  sensordash doctor --fix
  sensordash doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), globals, cmd.OutOrStdout(), doctorOptions{
			JSON:        doctorJSON,
			Fix:         doctorFix,
			Interactive: isInteractive(),
		})
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

type doctorOptions struct {
	JSON        bool
	Fix         bool
	Interactive bool
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs every check and reports. It returns an error when any
// check fails so the exit status reflects the result.
func doctorCommand(ctx context.Context, opts GlobalOptions, w io.Writer, dopts doctorOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	checks := collectChecks(opts, dopts.Interactive)
	results := doctor.RunAll(ctx, checks)

	if dopts.Fix && doctor.FixableCount(results) > 0 {
		results = doctor.FixAll(ctx, checks, results)
	}

	if dopts.JSON {
		if err := outputDoctorJSON(w, results); err != nil {
			return err
		}
	} else {
		outputDoctorText(w, results, dopts.Fix)
	}

	if doctor.HasFailures(results) {
		return errors.New(failureCode(results), doctor.Summary(results), "See the report above")
	}
	return nil
}

// failureCode picks the error code of the first failing category.
func failureCode(results []doctor.CheckResult) string {
	for _, r := range results {
		if r.Status != doctor.StatusFail {
			continue
		}
		if r.Category == doctor.CategoryServer {
			return errors.ErrFetch
		}
		return errors.ErrConfig
	}
	return errors.ErrConfig
}

// collectChecks builds the check list. Server checks use the effective
// settings; when those don't resolve the server checks report it.
func collectChecks(opts GlobalOptions, interactive bool) []doctor.Check {
	checks := []doctor.Check{
		&doctor.ConfigFileCheck{ConfigPath: opts.ConfigPath},
		&doctor.ConfigValidCheck{ConfigPath: opts.ConfigPath},
	}

	var source sensors.Source
	url := ""
	logFile := opts.LogFile
	if cfg, _, err := loadSettings(opts); err == nil {
		client := newClient(cfg, logger.Noop())
		source = client
		url = client.URL()
		logFile = cfg.Log.File
	}
	checks = append(checks, doctor.NewServerChecks(source, url)...)

	tuiLog := ""
	if interactive {
		tuiLog = defaultTUILogFile()
	}
	checks = append(checks,
		&doctor.LogFileCheck{Path: logFile, TUIPath: tuiLog},
		&doctor.TerminalCheck{Interactive: interactive},
	)
	return checks
}

func outputDoctorJSON(w io.Writer, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(results)
	output := DoctorOutput{}

	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, i := range indices {
			co.Results = append(co.Results, results[i])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputDoctorText(w io.Writer, results []doctor.CheckResult, fixed bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("sensordash diagnostic report"))
	fmt.Fprintln(w)

	grouped := doctor.GroupByCategory(results)
	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(cat))
		for _, i := range indices {
			renderCheckResult(w, results[i])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintln(w, ui.Success(doctor.Summary(results)))
	} else {
		fmt.Fprintln(w, ui.Failure(doctor.Summary(results)))
		if n := doctor.FixableCount(results); n > 0 && !fixed {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n", ui.Muted("--fix"))
		}
	}
	fmt.Fprintln(w)
}

func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolSuccess
		style = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case doctor.StatusWarn:
		symbol = ui.SymbolAlert
		style = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	default:
		symbol = ui.SymbolFail
		style = lipgloss.NewStyle().Foreground(ui.ColorError)
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.Muted(line))
		}
	}
}
