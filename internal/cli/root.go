// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"database/sql"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/db"
)

// options are the persistent flags shared by every command
type options struct {
	dbURL   string
	dbType  string
	verbose bool
}

// open connects to the configured database and makes sure the schema exists.
func (o *options) open() (*sql.DB, error) {
	conn, err := db.Open(o.dbType, o.dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Execute runs the cloudctl CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the cloudctl command tree. The database defaults
// come from DATABASE_URL and DATABASE_TYPE, as for the server.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "cloudctl",
		Short:        "cloudctl manages namecloud data and renders clouds",
		Long:         `cloudctl imports people data into the namecloud database, lists it, and renders name clouds as SVG, PDF or JSON without running the server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().StringVar(&opts.dbURL, "db", envOr("DATABASE_URL", cliparse.DefaultDatabaseURL), "database URL")
	root.PersistentFlags().StringVar(&opts.dbType, "type", envOr("DATABASE_TYPE", db.TypeSQLite), "database type (sqlite or postgres)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newResetCmd(opts))
	root.AddCommand(newPeopleCmd(opts))
	root.AddCommand(newLayoutCmd(opts))

	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
