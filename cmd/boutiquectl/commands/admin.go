package commands

import (
	"fmt"
	"strconv"

	"github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/output"
	"github.com/fekuna/boutique-catalog-service/internal/auth"
	"github.com/fekuna/boutique-catalog-service/internal/format"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash to put in ADMIN_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show catalog statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		st := a.Dashboard.Stats(cmd.Context())
		if jsonOutput {
			return output.JSON(st)
		}
		output.Title("Catalogue")
		output.Table([]string{"Products", "Categories", "Out of stock", "Featured"}, [][]string{{
			strconv.Itoa(st.TotalProducts),
			strconv.Itoa(st.TotalCategories),
			strconv.Itoa(st.OutOfStock),
			strconv.Itoa(st.Featured),
		}})
		if len(st.RecentProducts) == 0 {
			return nil
		}
		output.Title("Recent products")
		rows := make([][]string, 0, len(st.RecentProducts))
		for _, p := range st.RecentProducts {
			rows = append(rows, []string{p.Name, format.Price(p.Price), format.Date(p.CreatedAt)})
		}
		output.Table([]string{"Name", "Price", "Added"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd, dashboardCmd)
}
