package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logs"
	"github.com/rileyhilliard/tfui/internal/ui"
	"github.com/spf13/cobra"
)

// logsCmd implements `tfui logs` for listing run transcripts.
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View and manage run transcripts",
	Long: `List transcript sessions written while logs.enabled is set.

Each session is a directory under logs.dir (default ~/.tfui/logs) named
<project>-<timestamp>, holding one .log file per command and a summary.json.

Commands:
  tfui logs                  List sessions
  tfui logs clean            Apply the retention policy
  tfui logs clean --all      Delete every session
  tfui logs clean --older 7d Delete sessions older than a duration`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := logsConfig()
		if err != nil {
			return err
		}
		return listLogs(cmd.OutOrStdout(), cfg, time.Now())
	},
}

var logsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old transcript sessions",
	Long: `Remove sessions based on the retention policy or flags.

Without flags the logs settings from .tfui.yaml apply:
  - max_size_mb: delete oldest until under the size limit
  - keep_days: delete sessions older than N days
  - keep_runs: keep only the last N sessions per project`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := logsConfig()
		if err != nil {
			return err
		}
		return cleanLogs(cmd.OutOrStdout(), cfg, logsCleanAll, logsCleanOlder)
	},
}

var (
	logsCleanAll   bool
	logsCleanOlder string
)

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsCleanCmd)

	logsCleanCmd.Flags().BoolVar(&logsCleanAll, "all", false, "delete all sessions")
	logsCleanCmd.Flags().StringVar(&logsCleanOlder, "older", "", "delete sessions older than duration (e.g., 7d, 24h)")
}

func logsConfig() (config.LogsConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := loadConfig(cwd)
	if err != nil {
		return config.LogsConfig{}, err
	}
	return cfg.Logs, nil
}

func listLogs(w io.Writer, cfg config.LogsConfig, now time.Time) error {
	sessions, err := logs.ListSessions(cfg.Dir)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No transcripts found.")
		fmt.Fprintf(w, "Transcripts are stored in: %s\n", config.ExpandTilde(cfg.Dir))
		if !cfg.Enabled {
			fmt.Fprintln(w, "Set logs.enabled: true in .tfui.yaml to record runs.")
		}
		return nil
	}

	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	bold := lipgloss.NewStyle().Bold(true)
	header := lipgloss.NewStyle().Foreground(ui.ColorSecondary).Bold(true)

	fmt.Fprintln(w, header.Render("Terraform Run Transcripts"))
	fmt.Fprintln(w)

	var total int64
	for _, s := range sessions {
		total += s.Size
		fmt.Fprintf(w, "  %s  %s  %s\n",
			bold.Render(s.Name),
			muted.Render(humanize.Bytes(uint64(s.Size))),
			muted.Render(humanize.RelTime(s.ModTime, now, "ago", "from now")),
		)
		fmt.Fprintf(w, "    %s\n", muted.Render(s.Path))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d sessions, %s\n", len(sessions), humanize.Bytes(uint64(total)))

	var retention []string
	if cfg.KeepRuns > 0 {
		retention = append(retention, fmt.Sprintf("keep_runs: %d", cfg.KeepRuns))
	}
	if cfg.KeepDays > 0 {
		retention = append(retention, fmt.Sprintf("keep_days: %d", cfg.KeepDays))
	}
	if cfg.MaxSizeMB > 0 {
		retention = append(retention, fmt.Sprintf("max_size_mb: %d", cfg.MaxSizeMB))
	}
	if len(retention) > 0 {
		fmt.Fprintln(w, muted.Render("Retention: "+strings.Join(retention, ", ")))
	}
	return nil
}

func cleanLogs(w io.Writer, cfg config.LogsConfig, all bool, older string) error {
	baseDir := config.ExpandTilde(cfg.Dir)

	if all {
		fmt.Fprintf(w, "Deleting all transcripts in %s...\n", baseDir)
		if err := logs.CleanAll(baseDir); err != nil {
			return err
		}
		fmt.Fprintln(w, "Done.")
		return nil
	}

	before, err := logs.ListSessions(baseDir)
	if err != nil {
		return err
	}

	if older != "" {
		age, err := parseDurationWithDays(older)
		if err != nil {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid duration '%s'", older),
				"Use format like '7d' for days, '24h' for hours, or '30m' for minutes.")
		}
		if err := logs.CleanByAge(baseDir, age); err != nil {
			return err
		}
	} else if err := logs.Cleanup(cfg); err != nil {
		return err
	}

	after, err := logs.ListSessions(baseDir)
	if err != nil {
		return err
	}
	if deleted := len(before) - len(after); deleted > 0 {
		fmt.Fprintf(w, "Deleted %d sessions.\n", deleted)
	} else {
		fmt.Fprintln(w, "No transcripts needed cleanup.")
	}
	return nil
}

// parseDurationWithDays parses a duration string that may include 'd' for days.
func parseDurationWithDays(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		var d int
		if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &d); err != nil {
			return 0, err
		}
		return time.Duration(d) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
