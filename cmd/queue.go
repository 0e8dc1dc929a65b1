package main

import (
	"github.com/spf13/cobra"
)

// queueCommands inspects the active queue and its archive. They only need the local store.
func queueCommands(app *fieldSyncInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "inspect the local sync queue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "list envelopes waiting for the central database",
		RunE: func(cmd *cobra.Command, args []string) error {
			envelopes, err := app.store.ListActive(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, envelopes)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "historic",
		Short: "list archived envelopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			envelopes, err := app.store.ListHistoric(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, envelopes)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "purge [id_record]",
		Short: "remove an archived envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.DeleteHistoricByID(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Purged %s\n", args[0])
			return nil
		},
	})

	return cmd
}
