package commands

import (
	"fmt"

	"github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/output"
	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/format"
	"github.com/fekuna/boutique-catalog-service/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	categoryName        string
	categorySlug        string
	categoryDescription string
	categoryImageURL    string
	categoryImageFile   string
	categorySearch      string
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "List, create and delete categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every category",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		categories, total := a.Categories.ListCategories(cmd.Context(), &dto.CategoryFilters{SearchTerm: categorySearch})
		if jsonOutput {
			return output.JSON(categories)
		}
		if total == 0 {
			output.Muted("No categories")
			return nil
		}
		rows := make([][]string, 0, len(categories))
		for _, c := range categories {
			image := ""
			if c.Image != nil {
				image = "yes"
			}
			rows = append(rows, []string{c.ID, c.Name, c.Slug, image, format.Date(c.CreatedAt)})
		}
		output.Table([]string{"ID", "Name", "Slug", "Image", "Created"}, rows)
		output.Muted("%d categories", total)
		return nil
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Long: `Create a category. The slug is derived from the name unless --slug is set.

Examples:
  boutiquectl category create --name "Tissus & Wax"
  boutiquectl category create --name Parfums --image-file ./parfums.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		form := workflow.NewCategoryForm(a.Categories, a.Uploader)
		_ = form.Create()
		_ = form.SetName(categoryName)
		if categorySlug != "" {
			_ = form.SetSlug(categorySlug)
		}
		_ = form.SetDescription(categoryDescription)
		_ = form.SetImageURL(categoryImageURL)

		if categoryImageFile != "" {
			files, closeAll, err := openImages([]string{categoryImageFile})
			if err != nil {
				return err
			}
			defer closeAll()
			if err := form.AttachImage(files[0]); err != nil {
				return err
			}
		}

		id, err := form.Submit(cmd.Context())
		if err != nil {
			return err
		}
		output.Success("Category %q created (%s)", categoryName, id)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Long: `Delete a category by id. Products keep their category slug and are not
deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		existing := a.Categories.GetCategory(cmd.Context(), args[0])
		if existing == nil {
			return fmt.Errorf("category %s not found", args[0])
		}
		del := workflow.NewCategoryForm(a.Categories, a.Uploader).RequestDelete(existing.ID)
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete category %q?", existing.Name)) {
			output.Warning("Aborted")
			return nil
		}
		del.Confirm()
		if err := del.Execute(cmd.Context()); err != nil {
			return err
		}
		output.Success("Category %q deleted", existing.Name)
		return nil
	},
}

func init() {
	categoryListCmd.Flags().StringVar(&categorySearch, "search", "", "Filter by name")

	categoryCreateCmd.Flags().StringVar(&categoryName, "name", "", "Category name")
	categoryCreateCmd.Flags().StringVar(&categorySlug, "slug", "", "URL slug (derived from the name by default)")
	categoryCreateCmd.Flags().StringVar(&categoryDescription, "description", "", "Description")
	categoryCreateCmd.Flags().StringVar(&categoryImageURL, "image", "", "Image URL")
	categoryCreateCmd.Flags().StringVar(&categoryImageFile, "image-file", "", "Local image to upload")
	_ = categoryCreateCmd.MarkFlagRequired("name")
	categoryCreateCmd.MarkFlagsMutuallyExclusive("image", "image-file")

	categoryCmd.AddCommand(categoryListCmd, categoryCreateCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}
