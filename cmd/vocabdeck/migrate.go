package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conorfennell/vocabdeck/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy decks, cards and review stats from the hosted database",
	Long: `One-time migration from the hosted database into the local file.

Reads either a PostgREST endpoint (--migrate.url with --migrate.key) or a
Postgres DSN (--migrate.dsn). Rows whose id already exists locally are
skipped, so the command can be re-run. The first failure aborts it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var src migrate.Source
		switch {
		case cfg.Migrate.DSN != "":
			pg, err := migrate.NewPostgresSource(ctx, cfg.Migrate.DSN)
			if err != nil {
				return err
			}
			defer pg.Close()
			src = pg
		case cfg.Migrate.URL != "":
			src = migrate.NewRESTSource(cfg.Migrate.URL, cfg.Migrate.Key, cfg.Migrate.PageSize, cfg.Migrate.Timeout)
		default:
			return errors.New("nothing to migrate from: set migrate.url and migrate.key, or migrate.dsn")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		results, err := migrate.Run(ctx, src, db)
		for _, r := range results {
			color.Green("✓ %-12s fetched %d, inserted %d", r.Table, r.Fetched, r.Inserted)
		}
		if err != nil {
			color.Red("✗ Migration aborted")
			return err
		}
		fmt.Println("Migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
