package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/output"
	"github.com/blackwell-systems/lifewheel/internal/watcher"
)

var (
	watchDaemon   bool
	watchInterval string
	watchStop     bool
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Remind you when a domain slips into neglect",
	Long: `Run a background monitor that periodically re-reads your wheel. When a
domain falls into serious neglect, the nudge escalates, momentum turns
negative or a new day's task pack is ready, a desktop notification and a
terminal line are emitted.

Examples:
  lifewheel watch                    # run in foreground (ctrl-c to stop)
  lifewheel watch --daemon           # run in background, write PID file
  lifewheel watch --interval 15m     # check every 15 minutes (default: 30m)
  lifewheel watch --stop             # stop the background daemon`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "30m", "Check interval as duration string (e.g. 15m, 1h)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, err := time.ParseDuration(watchInterval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
	}
	if interval < 30*time.Second {
		return fmt.Errorf("interval must be at least 30s, got %s", interval)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	pidPath := filepath.Join(filepath.Dir(s.cfg.DBPath), "watch.pid")
	if watchStop {
		return stopDaemon(cmd.OutOrStdout(), pidPath)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer cancel()

	if watchDaemon {
		return runDaemon(ctx, s, pidPath, interval)
	}
	return runForeground(ctx, cmd.OutOrStdout(), s, interval)
}

// newWheelWatcher builds a watcher that reloads the stored state on every
// check, so scores and completions from other commands are seen.
func newWheelWatcher(s *session, interval time.Duration, alertFn func(watcher.Alert)) *watcher.Watcher {
	return watcher.New(func(ctx context.Context) (*watcher.WatchState, error) {
		s.engine = s.reload(ctx)
		return watcher.Capture(s.engine), nil
	}, interval, alertFn)
}

func runForeground(ctx context.Context, out io.Writer, s *session, interval time.Duration) error {
	w := newWheelWatcher(s, interval, func(a watcher.Alert) {
		_ = watcher.Notify(a)
		if !watchQuiet {
			printAlert(out, a)
		}
	})

	initial, err := w.Baseline(ctx)
	if err != nil {
		return err
	}
	if !watchQuiet {
		fmt.Fprintf(out, "lifewheel watching... (checking every %s)\n", interval)
		fmt.Fprintf(out, "[%s] %s %d pending, %d done, average %.1f\n",
			time.Now().Format("15:04:05"),
			output.StyleSuccess.Render("✓"),
			initial.Pending, initial.Done, initial.AvgScore)
		if initial.Nudge != nil {
			fmt.Fprintln(out, output.Nudge(string(initial.Nudge.Type), initial.Nudge.Message))
		}
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(out, "\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon writes the PID and log files, then runs the watcher. The
// backgrounding itself is left to the caller (nohup, &, a service manager).
func runDaemon(ctx context.Context, s *session, pidPath string, interval time.Duration) error {
	if pid, err := readPID(pidPath); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		_ = os.Remove(pidPath)
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidPath) }()

	logPath := filepath.Join(filepath.Dir(pidPath), "watch.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	writeLog(logFile, "lifewheel daemon started (PID %d, interval %s)", pid, interval)

	w := newWheelWatcher(s, interval, func(a watcher.Alert) {
		_ = watcher.Notify(a)
		writeLog(logFile, "[%s] %s: %s", a.Level, a.Title, a.Message)
	})

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		writeLog(logFile, "daemon stopped")
		return nil
	}
	return err
}

func readPID(pidPath string) (int, error) {
	data, err := os.ReadFile(pidPath)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func writeLog(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(w, "[%s] %s\n", timestamp, msg)
}

func printAlert(w io.Writer, a watcher.Alert) {
	fmt.Fprintf(w, "[%s] %s %s\n", a.Time.Format("15:04:05"), alertIcon(a.Level), a.Title)
	if a.Message != "" {
		fmt.Fprintf(w, "         %s\n", a.Message)
	}
}

func alertIcon(level string) string {
	switch level {
	case "critical":
		return output.StyleError.Render("●")
	case "warning":
		return output.StyleWarning.Render("▲")
	case "info":
		return output.StyleSuccess.Render("✓")
	default:
		return " "
	}
}
