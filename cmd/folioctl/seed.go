package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or replace the portfolio profile from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			p, err := readProfile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			stored, err := a.Portfolio.Save(ctx, p)
			if err != nil {
				return fmt.Errorf("save portfolio: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Portfolio %q seeded (%d projects, updated %s)\n",
				stored.Name, len(stored.Projects), stored.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "scripts/seed.json", "Profile JSON file")
	return cmd
}

func readProfile(path string) (*portfolio.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var p portfolio.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%s: profile name is empty", path)
	}
	return &p, nil
}
