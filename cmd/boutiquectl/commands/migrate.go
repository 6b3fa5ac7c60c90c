package commands

import (
	"github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/output"
	"github.com/fekuna/boutique-catalog-service/internal/app"
	"github.com/fekuna/boutique-catalog-service/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply the embedded schema migrations for the configured DB_DRIVER.

Migrations already recorded in schema_migrations are skipped, so running the
command twice is safe. The server applies them on start as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := app.OpenDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := migrations.Apply(cmd.Context(), db)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(map[string]any{"dialect": migrations.Dialect(db), "applied": applied})
		}
		if len(applied) == 0 {
			output.Muted("Schema is up to date (%s)", migrations.Dialect(db))
			return nil
		}
		for _, v := range applied {
			output.Success("Applied %s", v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
