package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fieldsync/fieldsync"
)

// syncCommands runs one pass, or keeps passing on the configured interval with --watch.
func syncCommands(app *fieldSyncInstance) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "push the local sync queue to the central database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.connect(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if watch {
				scheduler := fieldsync.NewSyncScheduler(app.fieldSync, app.cnf.Sync.Interval())
				app.fieldSync.RunSync(ctx)
				scheduler.Start(ctx)
				<-ctx.Done()
				scheduler.Stop()
				return nil
			}

			report, err := app.fieldSync.Sync(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if err := printJSON(cmd, report); err != nil {
				return err
			}
			if !report.Success() {
				logrus.Warnf("%d of %d records did not reach the central database", report.Total-report.Succeeded, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep syncing on the configured interval")

	return cmd
}
