package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full state snapshot as JSON or YAML",
	Long: `Export everything lifewheel knows (domains, every week's and month's
scores, every day's tasks and all templates) in the same layout it is stored
in.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want json or yaml)", exportFormat)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.engine.Snapshot()
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeSnapshot(w, snap, exportFormat)
}

// writeSnapshot re-encodes a JSON snapshot in format.
func writeSnapshot(w io.Writer, snap []byte, format string) error {
	var doc map[string]any
	if err := json.Unmarshal(snap, &doc); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("writing yaml: %w", err)
		}
		return enc.Close()
	}
	return writeJSON(w, doc)
}
