package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/vocabdeck/internal/config"
	"github.com/conorfennell/vocabdeck/internal/gitsource"
	"github.com/conorfennell/vocabdeck/internal/logging"
	"github.com/conorfennell/vocabdeck/internal/seed"
	"github.com/conorfennell/vocabdeck/internal/storage"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vocabdeck",
	Short: "Flashcards and verb reference for English study",
	Long: `vocabdeck serves a flashcard study app backed by a local SQLite file,
together with irregular verb and verb governance lookups.

QUICK START:

  $ vocabdeck serve                          # API and front end on :8081
  $ vocabdeck seed                           # load the reference datasets
  $ vocabdeck import --deck verbs notes.md   # turn Q:/A: notes into cards
  $ vocabdeck migrate --migrate.url URL --migrate.key KEY

CONFIGURATION:

  Every flag can also be set in vocabdeck.yaml (or the file named by
  --config) or through the environment, e.g. VOCABDECK_DB__PATH for
  --db.path. A .env file in the working directory is read first.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		return logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func openDB() (*storage.DB, error) {
	db, err := storage.Open(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Database opened", "path", db.Path())
	return db, nil
}

// syncDatasets refreshes the dataset checkout when a repository is
// configured. A failed sync is logged and seeding uses what is on disk.
func syncDatasets(ctx context.Context) {
	if cfg.Reference.GitURL == "" {
		return
	}
	if err := gitsource.Sync(ctx, cfg.Reference.GitURL, cfg.Reference.Dir, nil); err != nil {
		slog.Error("Error syncing dataset repository", "url", cfg.Reference.GitURL, "error", err)
	}
}

func newSeeder(db *storage.DB) *seed.Seeder {
	return seed.New(db, cfg.Reference.Dir, cfg.Reference.IrregularVerbs, cfg.Reference.PhrasalVerbs)
}
