package main

import (
	"fmt"
	"time"

	"github.com/folioworks/folio-api/internal/backup"
	"github.com/folioworks/folio-api/internal/storage"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a JSON snapshot of the profile and all leads to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			snap, err := backup.Take(ctx, a.Profiles, a.Leads, time.Now())
			if err != nil {
				return err
			}
			key, err := backup.Write(ctx, store, snap)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backup written: %s/%s (%d leads)\n", a.Config.MinIO.Bucket, key, len(snap.Leads))
			if ttl, _ := cmd.Flags().GetDuration("link-ttl"); ttl > 0 {
				link, err := store.PresignedURL(ctx, key, ttl)
				if err != nil {
					return fmt.Errorf("presign %s: %w", key, err)
				}
				fmt.Fprintf(out, "Download: %s\n", link)
			}
			return nil
		},
	}
	cmd.Flags().Duration("link-ttl", 0, "Also print a presigned download link valid for this long")
	return cmd
}
