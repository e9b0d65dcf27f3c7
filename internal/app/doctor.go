package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/config"
	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/output"
	"github.com/blackwell-systems/lifewheel/internal/store"
	"github.com/blackwell-systems/lifewheel/internal/timeframe"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the lifewheel setup is healthy",
	Long: `Run a series of read-only health checks against your lifewheel
configuration, database and stored state. Prints a pass/fail line for each
check and a summary of how many checks passed. The checks never create a
database or change the stored state.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupOutput(cfg)

	checks := doctorChecks(cmd.Context(), cfg, timeframe.SystemClock{})

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Fprintln(out, output.Section("Doctor"))
	fmt.Fprintln(out)
	for _, c := range checks {
		renderDoctorCheck(out, c)
	}
	fmt.Fprintln(out)
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(out, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(out, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// doctorChecks runs every check in order. Checks that need the stored
// snapshot are left out when it could not be read.
func doctorChecks(ctx context.Context, cfg *config.Config, clock timeframe.Clock) []doctorCheck {
	checks := []doctorCheck{checkConfigFile(cfg)}
	checks = append(checks, checkSeedFiles(cfg.Seed.Files)...)

	dbCheck, db := checkDatabase(cfg.DBPath)
	checks = append(checks, dbCheck)
	if db == nil {
		return append(checks, doctorCheck{Name: "Stored state", Message: "skipped: no database"})
	}
	defer db.Close()

	stateCheck, st := checkStoredState(ctx, db, cfg.StateKey)
	checks = append(checks, stateCheck)
	if st == nil {
		return checks
	}
	checks = append(checks, checkTemplates(st), checkTodayPack(st, clock))
	return checks
}

func renderDoctorCheck(w io.Writer, c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Fprintf(w, "  %s  %-30s %s\n", indicator, label, detail)
}

func checkConfigFile(cfg *config.Config) doctorCheck {
	domains := fmt.Sprintf("%d custom domains", len(cfg.Domains))
	if len(cfg.Domains) == 0 {
		domains = "built-in domains"
	}
	if cfg.File == "" {
		return doctorCheck{
			Name:    "Config file",
			Passed:  true,
			Message: "none found, using defaults with " + domains,
		}
	}
	return doctorCheck{
		Name:    "Config file",
		Passed:  true,
		Message: fmt.Sprintf("%s (%s)", cfg.File, domains),
	}
}

// checkSeedFiles verifies that each configured master list is readable.
func checkSeedFiles(files []string) []doctorCheck {
	if len(files) == 0 {
		return []doctorCheck{{
			Name:    "Seed files",
			Passed:  true,
			Message: "none configured, built-in list only",
		}}
	}
	var checks []doctorCheck
	for _, p := range files {
		name := fmt.Sprintf("Seed file: %s", filepath.Base(p))
		f, err := os.Open(p)
		if err != nil {
			checks = append(checks, doctorCheck{Name: name, Message: fmt.Sprintf("not readable: %s", p)})
			continue
		}
		_ = f.Close()
		checks = append(checks, doctorCheck{Name: name, Passed: true, Message: p})
	}
	return checks
}

// checkDatabase opens an existing database. It never creates one.
func checkDatabase(path string) (doctorCheck, *store.DB) {
	const name = "SQLite database"
	if _, err := os.Stat(path); err != nil {
		return doctorCheck{
			Name:    name,
			Message: fmt.Sprintf("not found: %s (run 'lifewheel' once to create it)", path),
		}, nil
	}
	db, err := store.Open(path)
	if err != nil {
		return doctorCheck{Name: name, Message: fmt.Sprintf("cannot open %s: %v", path, err)}, nil
	}
	version, err := db.SchemaVersion()
	if err != nil {
		_ = db.Close()
		return doctorCheck{Name: name, Message: fmt.Sprintf("no schema version: %v", err)}, nil
	}
	return doctorCheck{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%s (schema v%d)", path, version),
	}, db
}

// checkStoredState decodes the snapshot and reports anything the engine
// would have to repair on load.
func checkStoredState(ctx context.Context, db *store.DB, key string) (doctorCheck, *engine.State) {
	const name = "Stored state"
	data, err := db.Load(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return doctorCheck{Name: name, Message: fmt.Sprintf("no snapshot under %q", key)}, nil
	}
	if err != nil {
		return doctorCheck{Name: name, Message: fmt.Sprintf("read error: %v", err)}, nil
	}
	st, repaired, err := engine.CheckSnapshot(data)
	if err != nil {
		return doctorCheck{Name: name, Message: fmt.Sprintf("unreadable, will start fresh: %v", err)}, nil
	}
	if len(repaired) > 0 {
		return doctorCheck{
			Name:    name,
			Message: "will repair on load: " + strings.Join(repaired, ", "),
		}, st
	}
	msg := fmt.Sprintf("%d domains, %d weeks scored", len(st.Domains), len(st.WeeklyScores))
	if at, err := db.UpdatedAt(ctx, key); err == nil {
		msg += ", saved " + at.Local().Format("2006-01-02 15:04")
	}
	return doctorCheck{Name: name, Passed: true, Message: msg}, st
}

func checkTemplates(st *engine.State) doctorCheck {
	slots, labels := 0, 0
	for _, subs := range st.Templates {
		for _, slot := range subs {
			n := 0
			for _, d := range engine.Difficulties {
				n += len(slot.Labels(d))
			}
			if n > 0 {
				slots++
				labels += n
			}
		}
	}
	if slots == 0 {
		return doctorCheck{
			Name:    "Task templates",
			Message: "none stored, tasks use generic labels (try 'lifewheel templates seed')",
		}
	}
	return doctorCheck{
		Name:    "Task templates",
		Passed:  true,
		Message: fmt.Sprintf("%d labels across %d subdomains", labels, slots),
	}
}

func checkTodayPack(st *engine.State, clock timeframe.Clock) doctorCheck {
	today := timeframe.DayKey(clock.Now())
	pack := st.Tasks[today]
	if pack == nil {
		return doctorCheck{
			Name:    "Today's tasks",
			Message: fmt.Sprintf("no pack for %s yet, built on next run", today),
		}
	}
	return doctorCheck{
		Name:    "Today's tasks",
		Passed:  true,
		Message: fmt.Sprintf("%d pending, %d done", len(pack.Pending), len(pack.Done)),
	}
}
