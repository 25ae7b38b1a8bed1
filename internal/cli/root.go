// Package cli wires configuration, storage and the tracker into the
// waterflow command line.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/waterflow/internal/tui"
)

// Execute runs the root command
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "waterflow",
		Short: "waterflow - daily hydration tracker",
		Long: `waterflow tracks the water you drink today against a daily goal.

Without a subcommand it opens the terminal UI. Subcommands log and inspect
intake from scripts or the shell.`,
		RunE:          runTUI, // Default action is the TUI
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("db", "", "Database path (overrides WATERFLOW_DB_PATH)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newGoalCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newAdviceCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newVersionCmd(version))

	rootCmd.Version = version
	return rootCmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	info := tui.Info{
		DBPath:         e.cfg.DBPath,
		AdviceProvider: e.cfg.AdviceProvider,
		AdviceEnabled:  e.cfg.AdviceEnabled(),
	}
	app := tui.NewApp(e.tracker, e.gateway, info, e.logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
