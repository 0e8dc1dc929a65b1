package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func reconcileCommands(app *fieldSyncInstance) *cobra.Command {
	var (
		workDayID string
		repair    bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "list local records of a work day missing from the central database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workDayID == "" {
				return errors.New("--work-day is required")
			}
			if err := app.connect(); err != nil {
				return err
			}

			ctx := cmd.Context()
			workDay, err := app.store.GetWorkDay(ctx, workDayID)
			if err != nil {
				return err
			}

			report, err := app.fieldSync.ReconcileWorkDay(ctx, workDay)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, report); err != nil {
				return err
			}

			if repair && !report.IsConsistent() {
				n, err := app.fieldSync.RepairFromDelta(ctx, report)
				if err != nil {
					return err
				}
				cmd.Printf("Queued %d records for the next sync pass\n", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&workDayID, "work-day", "", "id of the work day to reconcile")
	cmd.Flags().BoolVar(&repair, "repair", false, "queue the missing records for sync")

	return cmd
}
