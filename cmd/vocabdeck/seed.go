package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference datasets into empty tables",
	Long: `Load irregular verbs and verb governance patterns from the JSON files in
reference.dir. Tables that already hold rows are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		syncDatasets(cmd.Context())
		res, err := newSeeder(db).Seed(cmd.Context())
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		if res.IrregularVerbs == 0 && res.PhrasalVerbs == 0 {
			faint.Println("Nothing to seed")
			return nil
		}
		color.Green("✓ Seeded %d irregular verbs", res.IrregularVerbs)
		color.Green("✓ Seeded %d phrasal verbs", res.PhrasalVerbs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
