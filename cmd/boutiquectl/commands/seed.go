package commands

import (
	"fmt"

	"github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/output"
	"github.com/spf13/cobra"
)

var resetCatalog bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Restore default settings or load the sample catalog",
}

var seedSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Restore every built-in site setting",
	Long: `Upsert each built-in setting (site info, heroes, about page, badge,
categories section) with its admin description. Values edited in the back
office are overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Overwrite the stored site settings with the defaults?") {
			output.Warning("Aborted")
			return nil
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Seeder.RestoreSettings(cmd.Context())
		if err != nil {
			return err
		}
		output.Success("%d settings restored", res.Settings)
		return nil
	},
}

var seedCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Insert the sample categories and products",
	Long: `Insert the sample categories (wax, bazin, accessoires, parfums) and their
products.

Examples:
  boutiquectl seed catalog            # add to the current catalog
  boutiquectl seed catalog --reset    # delete every product and category first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetCatalog && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete every product and category before seeding?") {
			output.Warning("Aborted")
			return nil
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Seeder.SampleCatalog(cmd.Context(), resetCatalog)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(res)
		}
		output.Success("%d categories and %d products added", res.Categories, res.Products)
		if res.Failed > 0 {
			output.Warning("%d rows were rejected, see the log", res.Failed)
			return fmt.Errorf("seed finished with %d failures", res.Failed)
		}
		return nil
	},
}

func init() {
	seedCatalogCmd.Flags().BoolVar(&resetCatalog, "reset", false, "Delete the existing catalog first")
	seedCmd.AddCommand(seedSettingsCmd, seedCatalogCmd)
	rootCmd.AddCommand(seedCmd)
}
