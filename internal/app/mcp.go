package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server over your life wheel",
	Long: `Start a Model Context Protocol stdio server so an assistant can read
today's dashboard, record scores and complete tasks. The server exposes:

  get_today          Dashboard with neglect, nudge and today's tasks
  get_week           This week's domain scores
  get_month          This month's subdomain scores
  get_insights       Week-over-week deltas and a focus suggestion
  set_weekly_score   Record a domain score for this week
  set_monthly_score  Record a subdomain score for this month
  complete_task      Complete a pending task
  log_task           Record an activity that was not on the list
  regenerate_tasks   Rebuild today's pending tasks

Logs go to stderr; stdout carries only protocol messages. Example client
configuration:
  {"mcpServers":{"lifewheel":{"command":"lifewheel","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	srv := mcp.NewServer(s.engine, appVersion, s.logger)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
