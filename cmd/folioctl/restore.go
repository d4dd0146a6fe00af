package main

import (
	"fmt"

	"github.com/folioworks/folio-api/internal/backup"
	"github.com/folioworks/folio-api/internal/storage"
	"github.com/spf13/cobra"
)

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the profile with the one stored in a backup snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := cmd.Flags().GetString("key")
			if key == "" {
				return fmt.Errorf("--key is required")
			}
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			store, err := storage.NewMinIOStore(ctx, a.Config.MinIO)
			if err != nil {
				return err
			}
			snap, err := backup.Restore(ctx, store, key, a.Portfolio)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Portfolio %q restored from %s (taken %s)\n",
				snap.Profile.Name, key, snap.TakenAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
	cmd.Flags().String("key", "", "Object key of the snapshot, as printed by backup")
	return cmd
}
