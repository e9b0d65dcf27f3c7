package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/output"
)

var (
	logSub        string
	logDifficulty string
)

var logCmd = &cobra.Command{
	Use:   "log <domain> <label...>",
	Short: "Record an ad hoc activity as done today",
	Long: `Log something you did that was not in today's pack. It goes straight to
the done list and raises the domain's weekly score like a completed task.

Examples:
  lifewheel log Physical "Walked to work"
  lifewheel log Social called mum --sub Family --difficulty standard`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logSub, "sub", "", "Subdomain index or name")
	logCmd.Flags().StringVar(&logDifficulty, "difficulty", "micro", "micro, standard or deep")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := resolveDomain(s.engine, args[0])
	if err != nil {
		return err
	}
	var sub *int
	if logSub != "" {
		idx, err := resolveSubdomain(s.engine, d, logSub)
		if err != nil {
			return err
		}
		sub = &idx
	}
	label := strings.Join(args[1:], " ")
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("label is required")
	}

	task, err := s.engine.LogTask(cmd.Context(), d, sub, logDifficulty, label)
	if err != nil {
		return fmt.Errorf("logging task: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, task)
	}
	fmt.Fprintf(out, " %s %s %s\n", output.StyleSuccess.Render("✓"), task.Label, output.StyleMuted.Render("("+string(task.Difficulty)+")"))
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(s.engine.Domains()[d].Name), output.ScoreBar(s.engine.WeeklyScore(d), 20))
	return nil
}
