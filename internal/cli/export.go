package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/waterflow/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export today's records to CSV or JSON",
		Example: `  waterflow export
  waterflow export --format json --out today.json`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	cmd.Flags().String("format", string(export.FormatCSV), "Output format (csv or json)")
	cmd.Flags().String("out", "", "Output file (default waterflow-export-<date>.<format> in the current directory)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("out")

	f, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	snap := e.tracker.Snapshot()
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = export.DefaultPath(cwd, snap.Day, f)
	}

	if err := export.Write(snap, f, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	e.logger.Info("export written", "path", path, "format", f, "records", len(snap.Records))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(snap.Records), path)
	return nil
}
