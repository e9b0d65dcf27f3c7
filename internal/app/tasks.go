package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/output"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List, complete or regenerate today's tasks",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

var tasksRegenCmd = &cobra.Command{
	Use:   "regen",
	Short: "Rebuild today's pending tasks from current scores",
	Long: `Replace today's pending tasks with a freshly generated pack. Completed
tasks are kept.`,
	Args: cobra.NoArgs,
	RunE: runTasksRegen,
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Complete a pending task and raise its domain's score",
	Long: `Move a pending task to today's done list. Its domain's weekly score
rises by 0.3 (micro), 0.5 (standard) or 0.8 (deep), capped at 10, and a
replacement task of the same domain and difficulty is queued.`,
	Args: cobra.ExactArgs(1),
	RunE: runTasksDone,
}

func init() {
	tasksCmd.AddCommand(tasksRegenCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasksList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	view := s.engine.TodayView()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, map[string]any{"pending": view.Pending, "done": view.Done})
	}
	renderTasks(out, view.Pending, view.Done)
	return nil
}

func runTasksRegen(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	s.engine.RegenerateTodayTasks(cmd.Context())

	view := s.engine.TodayView()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, map[string]any{"pending": view.Pending, "done": view.Done})
	}
	renderTasks(out, view.Pending, view.Done)
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	task, ok := s.engine.CompleteTask(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("no pending task %q today", args[0])
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, task)
	}
	name := s.engine.Domains()[task.DomainIndex].Name
	fmt.Fprintf(out, " %s %s\n", output.StyleSuccess.Render("✓"), task.Label)
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(name), output.ScoreBar(s.engine.WeeklyScore(task.DomainIndex), 20))
	return nil
}
