package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/lifewheel/internal/output"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List, rename or re-shape life domains",
	Args:  cobra.NoArgs,
	RunE:  runDomainsList,
}

var domainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domains and their subdomains with indices",
	Args:  cobra.NoArgs,
	RunE:  runDomainsList,
}

var domainsRenameCmd = &cobra.Command{
	Use:   "rename <domain> <new-name...>",
	Short: "Rename a domain",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDomainsRename,
}

var domainsSubsCmd = &cobra.Command{
	Use:   "subs <domain> <subdomain...>",
	Short: "Replace a domain's subdomain list",
	Long: `Replace the subdomain list of a domain. Subdomains are matched to
existing scores and templates by position, so keep existing entries in place
and add new ones at the end.

Example:
  lifewheel domains subs Physical Strength Stamina Mobility Health Sleep`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDomainsSubs,
}

func init() {
	domainsCmd.AddCommand(domainsListCmd)
	domainsCmd.AddCommand(domainsRenameCmd)
	domainsCmd.AddCommand(domainsSubsCmd)
	rootCmd.AddCommand(domainsCmd)
}

func runDomainsList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	domains := s.engine.Domains()
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, domains)
	}

	tbl := output.NewTable("#", "Domain", "Subdomains")
	for i, d := range domains {
		subs := make([]string, len(d.Subdomains))
		for j, sub := range d.Subdomains {
			subs[j] = fmt.Sprintf("%d:%s", j, sub)
		}
		tbl.AddRow(fmt.Sprint(i), d.Name, strings.Join(subs, ", "))
	}
	tbl.Fprint(out)
	return nil
}

func runDomainsRename(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := resolveDomain(s.engine, args[0])
	if err != nil {
		return err
	}
	if err := s.engine.UpdateDomainName(cmd.Context(), d, strings.Join(args[1:], " ")); err != nil {
		return fmt.Errorf("renaming domain: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, s.engine.Domains()[d])
	}
	fmt.Fprintf(out, " %s domain %d is now %s\n", output.StyleSuccess.Render("✓"), d, output.StyleBold.Render(s.engine.Domains()[d].Name))
	return nil
}

func runDomainsSubs(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := resolveDomain(s.engine, args[0])
	if err != nil {
		return err
	}
	subs := cleanLabels(args[1:])
	if len(subs) == 0 {
		return fmt.Errorf("at least one subdomain is required")
	}
	if err := s.engine.UpdateDomainSubdomains(cmd.Context(), d, subs); err != nil {
		return fmt.Errorf("updating subdomains: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, s.engine.Domains()[d])
	}
	fmt.Fprintf(out, " %s %s: %s\n", output.StyleSuccess.Render("✓"), s.engine.Domains()[d].Name, strings.Join(subs, ", "))
	return nil
}
