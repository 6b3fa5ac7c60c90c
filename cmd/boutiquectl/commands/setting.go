package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/output"
	"github.com/fekuna/boutique-catalog-service/internal/format"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	"github.com/spf13/cobra"
)

var settingDescription string

var settingCmd = &cobra.Command{
	Use:     "setting",
	Aliases: []string{"settings"},
	Short:   "Read and write site settings",
}

var settingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		rows := a.Settings.ListSettings(cmd.Context())
		if jsonOutput {
			return output.JSON(rows)
		}
		if len(rows) == 0 {
			output.Muted("No settings stored, the storefront uses the built-in defaults")
			return nil
		}
		table := make([][]string, 0, len(rows))
		for _, s := range rows {
			desc := ""
			if s.Description != nil {
				desc = *s.Description
			}
			known := "yes"
			if !setting.IsKnownKey(s.Key) {
				known = "no"
			}
			table = append(table, []string{s.Key, desc, known, format.Date(s.UpdatedAt)})
		}
		output.Table([]string{"Key", "Description", "Known", "Updated"}, table)
		return nil
	},
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting value as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		raw, ok := a.Settings.GetSettingByKey(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("setting %s not found", args[0])
		}
		return output.JSON(raw)
	},
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <json>",
	Short: "Store a setting value",
	Long: `Store a JSON value under key, creating the setting if needed.

Examples:
  boutiquectl setting set collection_badge '{"text":"Nouvelle Collection","visible":true}'
  boutiquectl setting set home_hero "$(cat hero.json)" --description "Hero accueil"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], json.RawMessage(args[1])
		if !json.Valid(value) {
			return fmt.Errorf("value for %s is not valid JSON", key)
		}
		if !setting.IsKnownKey(key) {
			output.Warning("%s is not a key the storefront reads", key)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var desc *string
		if cmd.Flags().Changed("description") {
			desc = &settingDescription
		}
		if err := a.Settings.UpdateSetting(cmd.Context(), key, value, desc); err != nil {
			return err
		}
		output.Success("Setting %s saved", key)
		return nil
	},
}

func init() {
	settingSetCmd.Flags().StringVar(&settingDescription, "description", "", "Admin description")
	settingCmd.AddCommand(settingListCmd, settingGetCmd, settingSetCmd)
	rootCmd.AddCommand(settingCmd)
}
