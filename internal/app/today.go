package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/output"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's dashboard: scores, neglect, nudge and tasks",
	Long: `Show this week's average, strongest and weakest domain, every domain
sorted worst first with its neglect level and last week's score, the coaching
nudge, and today's pending and completed tasks.`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	view := s.engine.TodayView()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, view)
	}
	renderToday(out, view, s.engine.Momentum())
	return nil
}

func renderToday(w io.Writer, v engine.TodayView, momentum float64) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Today · %s · %s", v.Period.WeekKey, v.Period.MonthKey)))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Average score"), output.ScoreBar(v.AvgScore, 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Momentum"), output.TrendArrowPercent(momentum*100, true))
	if v.Strongest != nil {
		fmt.Fprintf(w, " %s %s %s\n", output.StyleLabel.Render("Strongest"),
			output.StyleBold.Render(v.Strongest.Name), output.StyleMuted.Render(fmt.Sprintf("%.1f", v.Strongest.Score)))
		fmt.Fprintf(w, " %s %s %s\n", output.StyleLabel.Render("Weakest"),
			output.StyleBold.Render(v.Weakest.Name), output.StyleMuted.Render(fmt.Sprintf("%.1f", v.Weakest.Score)))
	}

	fmt.Fprintln(w, output.Section("Domains"))
	tbl := output.NewTable("#", "Domain", "Score", "Neglect", "vs "+v.PrevWeekKey)
	for _, d := range v.Domains {
		trend := output.StyleMuted.Render("n/a")
		if d.LastWeek != nil {
			trend = output.TrendArrow(d.Score-*d.LastWeek, true)
		}
		tbl.AddRow(fmt.Sprint(d.Index), d.Name, output.ScoreBar(d.Score, 10), output.NeglectBadge(string(d.Neglect)), trend)
	}
	tbl.Fprint(w)

	if v.Nudge != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, output.Nudge(string(v.Nudge.Type), v.Nudge.Message))
	}

	renderTasks(w, v.Pending, v.Done)
}

func renderTasks(w io.Writer, pending, done []engine.Task) {
	fmt.Fprintln(w, output.Section("Pending tasks"))
	if len(pending) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" Nothing pending. Run 'lifewheel tasks regen' for a fresh pack."))
	} else {
		tbl := output.NewTable("ID", "Difficulty", "Domain", "Task")
		for _, t := range pending {
			tbl.AddRow(t.ID, string(t.Difficulty), fmt.Sprint(t.DomainIndex), t.Label)
		}
		tbl.Fprint(w)
	}

	if len(done) == 0 {
		return
	}
	fmt.Fprintln(w, output.Section("Done today"))
	for _, t := range done {
		fmt.Fprintf(w, " %s %s %s\n", output.StyleSuccess.Render("✓"), t.Label, output.StyleMuted.Render("("+string(t.Difficulty)+")"))
	}
}
