package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/output"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this week's domain scores",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show this month's subdomain scores",
	Args:  cobra.NoArgs,
	RunE:  runMonth,
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Compare this week with last week and suggest a focus",
	Long: `Show each domain's score against the previous week and suggest one
domain to focus on next week: the lowest current score, breaking ties toward
the domain that dropped the most.`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Print domain/score pairs for charting",
	Args:  cobra.NoArgs,
	RunE:  runRadar,
}

func init() {
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(radarCmd)
}

func runWeek(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	view := s.engine.WeeklyView()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, view)
	}

	fmt.Fprintln(out, output.Section("Week "+view.WeekKey))
	tbl := output.NewTable("#", "Domain", "Score", "Neglect")
	for _, d := range view.Domains {
		tbl.AddRow(fmt.Sprint(d.Index), d.Name, output.ScoreBar(d.Score, 20),
			output.NeglectBadge(string(s.engine.DeriveNeglect(d.Score))))
	}
	tbl.Fprint(out)
	return nil
}

func runMonth(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	view := s.engine.MonthlyView()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, view)
	}

	for _, d := range view.Domains {
		fmt.Fprintln(out, output.Section(fmt.Sprintf("%d · %s · %s", d.Index, d.Name, view.MonthKey)))
		for _, sub := range d.Subs {
			fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(fmt.Sprintf("%d %s", sub.Index, sub.Name)), output.ScoreBar(sub.Value, 20))
		}
	}
	return nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	view := s.engine.InsightsView()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, view)
	}
	renderInsights(out, view)
	return nil
}

func renderInsights(w io.Writer, v engine.InsightsView) {
	fmt.Fprintln(w, output.Section("This week vs last week"))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Average score"), output.ScoreBar(v.AvgScore, 20))

	tbl := output.NewTable("#", "Domain", "Now", "Last", "Change")
	for _, d := range v.Deltas {
		last, change := "n/a", output.StyleMuted.Render("n/a")
		if d.Prev != nil {
			last = fmt.Sprintf("%.1f", *d.Prev)
			change = output.TrendArrow(*d.Delta, true)
		}
		tbl.AddRow(fmt.Sprint(d.Index), d.Name, fmt.Sprintf("%.1f", d.Cur), last, change)
	}
	tbl.Fprint(w)

	fmt.Fprintln(w, output.Section("Suggested focus for next week"))
	if !v.HasPrevWeek || v.FocusIndex == nil {
		fmt.Fprintln(w, output.StyleMuted.Render(" Not enough weekly data yet. Add some scores to see a focus suggestion."))
		return
	}
	f := v.Deltas[*v.FocusIndex]
	fmt.Fprintf(w, " %s is your lowest domain this week (%.1f).\n", output.StyleBold.Render(f.Name), f.Cur)
	if f.Delta != nil && *f.Delta < 0 {
		fmt.Fprintf(w, " It dropped %.1f since last week.\n", -*f.Delta)
	}
}

func runRadar(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	radar := s.engine.RadarData()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, radar)
	}
	for i, label := range radar.Labels {
		fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(label), output.ScoreBar(radar.Values[i], 30))
	}
	return nil
}
