// Package app contains the Cobra command tree for lifewheel.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "lifewheel",
	Short: "Score your life domains and get a daily task pack for the neglected ones",
	Long: `lifewheel tracks how you rate yourself across a fixed set of life domains
(Physical, Mental, Social, ...) and their subdomains. From this week's scores it
derives which domains are being neglected, and builds a small daily pack of
micro, standard and deep tasks biased toward them.

Run 'lifewheel' with no arguments to see today's dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runToday,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/lifewheel/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
