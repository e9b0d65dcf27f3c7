package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/output"
)

var (
	templatesFile  string
	templatesFiles []string
	templatesNoDef bool
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show and edit the task labels used for generated tasks",
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show every subdomain's micro, standard and deep labels",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesSetCmd = &cobra.Command{
	Use:   "set <domain> <subdomain> <difficulty> [label...]",
	Short: "Replace the labels for one subdomain and difficulty",
	Long: `Replace the label list for one subdomain and difficulty. Labels come
from the remaining arguments, or one per line from --file ("-" reads stdin).
Giving no labels clears the list.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runTemplatesSet,
}

var templatesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the master activity list into empty templates",
	Long: `Seed the template store from the built-in master list and any --file
lists (Domain|Subdomain|Difficulty|Label per line). Nothing is written if any
template already exists.`,
	Args: cobra.NoArgs,
	RunE: runTemplatesSeed,
}

func init() {
	templatesSetCmd.Flags().StringVar(&templatesFile, "file", "", "Read labels from a file, one per line")
	templatesSeedCmd.Flags().StringSliceVar(&templatesFiles, "file", nil, "Extra master list files (can specify multiple)")
	templatesSeedCmd.Flags().BoolVar(&templatesNoDef, "no-builtin", false, "Skip the built-in master list")
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesSetCmd)
	templatesCmd.AddCommand(templatesSeedCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := resolveDomain(s.engine, args[0])
	if err != nil {
		return err
	}
	blocks := s.engine.TaskTemplatesForDomain(d)
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, blocks)
	}

	for _, b := range blocks {
		fmt.Fprintln(out, output.Section(fmt.Sprintf("%d · %s", b.SubIndex, b.SubName)))
		for _, diff := range engine.Difficulties {
			labels := b.Labels(diff)
			fmt.Fprintf(out, " %s\n", output.StyleBold.Render(string(diff)))
			if len(labels) == 0 {
				fmt.Fprintln(out, output.StyleMuted.Render("   (none)"))
				continue
			}
			for _, l := range labels {
				fmt.Fprintf(out, "   - %s\n", l)
			}
		}
	}
	return nil
}

func runTemplatesSet(cmd *cobra.Command, args []string) error {
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
	diff, ok := engine.ParseDifficulty(args[2])
	if !ok {
		return fmt.Errorf("difficulty %q: %w", args[2], engine.ErrInvalidDifficulty)
	}

	labels := cleanLabels(args[3:])
	if templatesFile != "" {
		fromFile, err := readLabels(cmd.InOrStdin(), templatesFile)
		if err != nil {
			return err
		}
		labels = append(labels, fromFile...)
	}

	if err := s.engine.UpdateTaskTemplateBlock(cmd.Context(), d, sub, diff, labels); err != nil {
		return fmt.Errorf("updating templates: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, s.engine.TaskTemplatesForDomain(d)[sub])
	}
	fmt.Fprintf(out, " %s %d %s labels for %s / %s\n", output.StyleSuccess.Render("✓"),
		len(labels), diff, s.engine.Domains()[d].Name, s.engine.Domains()[d].Subdomains[sub])
	return nil
}

func runTemplatesSeed(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	files := append(append([]string{}, s.cfg.Seed.Files...), templatesFiles...)
	res, err := s.seed(cmd.Context(), files, !templatesNoDef)
	if err != nil {
		return fmt.Errorf("seeding templates: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, res)
	}
	if !res.Ran {
		fmt.Fprintln(out, output.StyleMuted.Render(" Templates already present, nothing seeded."))
		return nil
	}
	fmt.Fprintf(out, " %s seeded %d subdomain blocks\n", output.StyleSuccess.Render("✓"), res.Applied)
	for _, u := range res.Unresolved {
		fmt.Fprintf(out, " %s unknown %s\n", output.StyleWarning.Render("!"), u)
	}
	return nil
}

func readLabels(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening labels file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading labels: %w", err)
	}
	return cleanLabels(lines), nil
}

func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
