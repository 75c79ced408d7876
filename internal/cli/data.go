// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/db"
	"github.com/danielhkuo/namecloud/people"
)

func newImportCmd(opts *options) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "import [paths...]",
		Short: "Import people data from CSV or XLSX files",
		Long: `Import people data. A directory is scanned for people, people_quotes,
people_creations and people_connections files (.csv or .xlsx); a file is
imported into the table named after it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			conn, err := opts.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			if reset {
				logger.Warn("Dropping all tables")
				if err := db.ResetSchema(conn); err != nil {
					return err
				}
			}

			prog := newProgress(logger)
			var results []people.ImportResult
			for _, path := range args {
				fi, err := os.Stat(path)
				if err != nil {
					return err
				}

				logger.Debug("Importing", "path", path, "dir", fi.IsDir())
				if fi.IsDir() {
					rs, err := people.ImportDir(ctx, conn, path)
					results = append(results, rs...)
					if err != nil {
						printImportSummary(cmd.OutOrStdout(), results)
						return err
					}
					if len(rs) == 0 {
						logger.Warn("No people files found", "dir", path)
					}
					continue
				}

				res, err := people.ImportFile(ctx, conn, path)
				if err != nil {
					printImportSummary(cmd.OutOrStdout(), results)
					return fmt.Errorf("%s: %w", path, err)
				}
				results = append(results, res)
			}

			printImportSummary(cmd.OutOrStdout(), results)

			inserted := 0
			for _, res := range results {
				inserted += res.Inserted
			}
			prog.done(fmt.Sprintf("Imported %d rows from %d tables", inserted, len(results)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate all tables first")
	return cmd
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := opts.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.ResetSchema(conn); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Schema reset")
			return nil
		},
	}
}

func newPeopleCmd(opts *options) *cobra.Command {
	var (
		category    string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "people",
		Short: "List people with their vote counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}

			conn, err := opts.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			list, err := people.List(cmd.Context(), conn, category)
			if err != nil {
				return err
			}
			printPeople(cmd.OutOrStdout(), list, cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "category catalog TOML (default: built-in)")
	return cmd
}
