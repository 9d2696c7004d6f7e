package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nhle/todoapp/internal/server"
	"github.com/nhle/todoapp/internal/store"
)

// NewServeCommand creates the serve command, which runs the HTTP server
// until interrupted.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the todo HTTP server",
		Long: `Run the todo HTTP server.

The server opens (or creates) the SQLite database, applies pending
schema migrations, and serves the todo API until SIGINT or SIGTERM.

Example:
  todoapp serve
  todoapp serve --addr :9090 --db /tmp/todos.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			logger := newLogger(cfg.Log)

			st, err := store.NewSQLiteStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server.Addr, st, logger)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")

	return cmd
}
