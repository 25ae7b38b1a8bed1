package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/waterflow/internal/advice"
)

func newAdviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Ask the hydration coach for a tip on today's progress",
		Args:  cobra.NoArgs,
		RunE:  runAdvice,
	}
}

func runAdvice(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	snap := e.tracker.Snapshot()
	res := e.gateway.RequestAdvice(cmd.Context(), advice.Stats{
		Total: snap.Total,
		Goal:  snap.Goal,
		Count: len(snap.Records),
	})

	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}
