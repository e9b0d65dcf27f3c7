package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/output"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Set a weekly domain score or a monthly subdomain score",
	Long: `Record how you rate yourself. Domains and subdomains are addressed by
index or exact name.

Examples:
  lifewheel score week Physical 6.5
  lifewheel score week 2 4
  lifewheel score month Social Family 7`,
}

var scoreWeekCmd = &cobra.Command{
	Use:   "week <domain> <value>",
	Short: "Set this week's score for a domain",
	Args:  cobra.ExactArgs(2),
	RunE:  runScoreWeek,
}

var scoreMonthCmd = &cobra.Command{
	Use:   "month <domain> <subdomain> <value>",
	Short: "Set this month's score for a subdomain",
	Args:  cobra.ExactArgs(3),
	RunE:  runScoreMonth,
}

func init() {
	scoreCmd.AddCommand(scoreWeekCmd)
	scoreCmd.AddCommand(scoreMonthCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScoreWeek(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := resolveDomain(s.engine, args[0])
	if err != nil {
		return err
	}
	v, err := parseScore(args[1])
	if err != nil {
		return err
	}
	if err := s.engine.SetWeeklyScore(cmd.Context(), d, v); err != nil {
		return fmt.Errorf("setting weekly score: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, s.engine.WeeklyView().Domains[d])
	}
	name := s.engine.Domains()[d].Name
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(name), output.ScoreBar(s.engine.WeeklyScore(d), 20))
	return nil
}

func runScoreMonth(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := resolveDomain(s.engine, args[0])
	if err != nil {
		return err
	}
	sub, err := resolveSubdomain(s.engine, d, args[1])
	if err != nil {
		return err
	}
	v, err := parseScore(args[2])
	if err != nil {
		return err
	}
	if err := s.engine.SetMonthlySubScore(cmd.Context(), d, sub, v); err != nil {
		return fmt.Errorf("setting monthly score: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, s.engine.MonthlyView().Domains[d].Subs[sub])
	}
	dom := s.engine.Domains()[d]
	label := dom.Name + " / " + dom.Subdomains[sub]
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(label), output.ScoreBar(s.engine.MonthlySubScore(d, sub), 20))
	return nil
}
