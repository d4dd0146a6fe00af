package main

import (
	"fmt"
	"time"

	"github.com/folioworks/folio-api/internal/contact"
	"github.com/spf13/cobra"
)

func notifyTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify-test",
		Short: "Send a test lead through every configured notification channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			out := cmd.OutOrStdout()
			enabled := a.Notifier.EnabledChannels()
			if len(enabled) == 0 {
				fmt.Fprintln(out, "No notification channel is configured (set TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN, EMAIL_WEBHOOK_URL or KAFKA_BROKERS).")
				return nil
			}
			fmt.Fprintf(out, "Channels: %v\n", enabled)

			name, _ := cmd.Flags().GetString("name")
			lead := contact.Lead{
				Name:      name,
				Email:     "test@example.com",
				Mobile:    "+10000000000",
				Message:   "This is a test notification from folioctl.",
				IPAddress: contact.Unknown,
				UserAgent: "folioctl",
				CreatedAt: time.Now().UTC(),
			}
			if err := a.Notifier.Deliver(ctx, lead); err != nil {
				return fmt.Errorf("notification failed: %w", err)
			}
			fmt.Fprintln(out, "Test notification sent.")
			return nil
		},
	}
	cmd.Flags().String("name", "Test User", "Sender name on the test lead")
	return cmd
}
