package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/todoapp/internal/store"
)

// NewSeedCommand creates the seed command, which inserts sample todos.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample todos for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			st, err := store.NewSQLiteStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			if err := st.Seed(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "seeded sample todos")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")

	return cmd
}
