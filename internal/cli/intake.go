package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sadopc/waterflow/internal/hydration"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <ml>",
		Short: "Log a drink of <ml> millilitres",
		Example: `  waterflow add 250
  waterflow add 500`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := hydration.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.tracker.Add(amount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %d ml at %s (id %s)\n", r.Amount, r.Timestamp.Format("15:04"), r.ID)
	printProgress(out, e.tracker.Snapshot())
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove one of today's records",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id := args[0]
	found := slices.ContainsFunc(e.tracker.Records(), func(r hydration.Record) bool {
		return r.ID == id
	})
	e.tracker.Delete(id)

	out := cmd.OutOrStdout()
	if !found {
		fmt.Fprintf(out, "No record with id %s today.\n", id)
		return nil
	}
	fmt.Fprintf(out, "Deleted %s\n", id)
	printProgress(out, e.tracker.Snapshot())
	return nil
}

func newGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [ml]",
		Short: "Show or set the daily goal",
		Long: `Show the daily goal, or set it when a value is given.

Most adults need 2000 - 3000 ml a day depending on weight and activity.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGoal,
	}
}

func runGoal(cmd *cobra.Command, args []string) error {
	var goal int
	if len(args) == 1 {
		g, err := hydration.ParseGoal(args[0])
		if err != nil {
			return fmt.Errorf("%q: %w", args[0], err)
		}
		goal = g
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	if goal == 0 {
		fmt.Fprintf(out, "Daily goal: %d ml\n", e.tracker.Goal())
		return nil
	}
	if err := e.tracker.SetGoal(goal); err != nil {
		return err
	}
	fmt.Fprintf(out, "Daily goal set to %d ml\n", goal)
	printProgress(out, e.tracker.Snapshot())
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's total, goal and records",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	snap := e.tracker.Snapshot()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Today (%s)\n\n", snap.Day.Format("Mon Jan 2"))
	printProgress(out, snap)

	if len(snap.Records) == 0 {
		fmt.Fprintln(out, "\nNo drinks logged today.")
		return nil
	}

	fmt.Fprintf(out, "\nRecords (%d):\n", len(snap.Records))
	for _, r := range snap.Records {
		fmt.Fprintf(out, "  %s  %5d ml  %s\n", r.Timestamp.Format("15:04"), r.Amount, r.ID)
	}
	return nil
}

func printProgress(out io.Writer, snap hydration.Snapshot) {
	fmt.Fprintf(out, "Total: %d / %d ml (%d%%)\n", snap.Total, snap.Goal, snap.Progress)
	if snap.GoalReached() {
		fmt.Fprintln(out, "Goal reached. Great job!")
		return
	}
	fmt.Fprintf(out, "%d ml to go\n", snap.Remaining())
}
