package commands

import (
	"fmt"
	"strconv"

	"github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/output"
	"github.com/fekuna/boutique-catalog-service/internal/format"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/fekuna/boutique-catalog-service/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	productCategory    string
	productSearch      string
	productFeatured    bool
	productPage        int
	productLimit       int
	productName        string
	productDescription string
	productPrice       string
	productSubCategory string
	productOutOfStock  bool
	productImageURLs   []string
	productImageFiles  []string
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products"},
	Short:   "List, create and delete products",
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, newest first",
	Long: `List products, newest first.

Examples:
  boutiquectl product list --category wax
  boutiquectl product list --featured --limit 4
  boutiquectl product list --search bazin --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		filters := &dto.ProductFilters{
			Category:   productCategory,
			SearchTerm: productSearch,
			Page:       productPage,
			Limit:      productLimit,
		}
		if cmd.Flags().Changed("featured") {
			filters.Featured = &productFeatured
		}
		products, total := a.Products.ListProducts(cmd.Context(), filters)
		if jsonOutput {
			return output.JSON(map[string]any{"products": products, "total": total})
		}
		if len(products) == 0 {
			output.Muted("No products")
			return nil
		}

		rows := make([][]string, 0, len(products))
		for _, p := range products {
			stock := "yes"
			if !p.InStock {
				stock = "no"
			}
			featured := ""
			if p.Featured {
				featured = "★"
			}
			rows = append(rows, []string{p.ID, p.Name, p.Category, format.Price(p.Price), stock, featured, strconv.Itoa(len(p.Images))})
		}
		output.Table([]string{"ID", "Name", "Category", "Price", "In stock", "Featured", "Images"}, rows)
		output.Muted("page %d of %d, %d products", max(productPage, 1), max(query.TotalPages(total, productLimit), 1), total)
		return nil
	},
}

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Long: `Create a product. Local images given with --image-file are uploaded one
by one before the product is saved; --image adds URLs already hosted.

Examples:
  boutiquectl product create --name "Oud Royal" --price "15 000" --category parfums
  boutiquectl product create --name Boubou --price 45000 --category bazin \
    --image-file front.jpg --image-file back.jpg --featured`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		form := workflow.NewProductForm(a.Products, a.Uploader)
		_ = form.Create(productCategory)
		_ = form.SetImages(productImageURLs)
		_ = form.SetFields(workflow.ProductFields{
			Name:        productName,
			Description: productDescription,
			Price:       productPrice,
			Category:    productCategory,
			SubCategory: productSubCategory,
			InStock:     !productOutOfStock,
			Featured:    productFeatured,
		})

		if len(productImageFiles) > 0 {
			files, closeAll, err := openImages(productImageFiles)
			if err != nil {
				return err
			}
			defer closeAll()
			if err := form.AttachImages(files...); err != nil {
				return err
			}
			form.OnProgress(func(index, percent, total int) {
				output.Progress(index, percent, total, files[index].Name)
			})
		}

		id, err := form.Submit(cmd.Context())
		if err != nil {
			return err
		}
		output.Success("Product %q created (%s)", productName, id)
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		existing := a.Products.GetProduct(cmd.Context(), args[0])
		if existing == nil {
			return fmt.Errorf("product %s not found", args[0])
		}
		del := workflow.NewProductForm(a.Products, a.Uploader).RequestDelete(existing.ID)
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete product %q?", existing.Name)) {
			output.Warning("Aborted")
			return nil
		}
		del.Confirm()
		if err := del.Execute(cmd.Context()); err != nil {
			return err
		}
		output.Success("Product %q deleted", existing.Name)
		return nil
	},
}

var productRemoveImageCmd = &cobra.Command{
	Use:   "remove-image <id> <index>",
	Short: "Remove one image from a product",
	Long: `Remove the image at the given 0-based position. The remaining images keep
their order; the stored file is deleted when it lives in the catalog bucket.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[1])
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remove image %d of product %s?", index, args[0])) {
			output.Warning("Aborted")
			return nil
		}
		if !a.Products.RemoveImage(cmd.Context(), args[0], index) {
			return fmt.Errorf("could not remove image %d of product %s", index, args[0])
		}
		output.Success("Image removed")
		return nil
	},
}

func init() {
	productListCmd.Flags().StringVar(&productCategory, "category", "", "Category slug")
	productListCmd.Flags().StringVar(&productSearch, "search", "", "Case-insensitive name search")
	productListCmd.Flags().BoolVar(&productFeatured, "featured", false, "Only featured (or --featured=false for the others)")
	productListCmd.Flags().IntVar(&productPage, "page", 1, "Page number")
	productListCmd.Flags().IntVar(&productLimit, "limit", 20, "Page size")

	productCreateCmd.Flags().StringVar(&productName, "name", "", "Product name")
	productCreateCmd.Flags().StringVar(&productDescription, "description", "", "Description")
	productCreateCmd.Flags().StringVar(&productPrice, "price", "", `Price in FCFA, e.g. 45000 or "45 000"`)
	productCreateCmd.Flags().StringVar(&productCategory, "category", "", "Category slug")
	productCreateCmd.Flags().StringVar(&productSubCategory, "sub-category", "", "Sub-category label")
	productCreateCmd.Flags().BoolVar(&productFeatured, "featured", false, "Show on the home page")
	productCreateCmd.Flags().BoolVar(&productOutOfStock, "out-of-stock", false, "Mark as out of stock")
	productCreateCmd.Flags().StringArrayVar(&productImageURLs, "image", nil, "Hosted image URL (repeatable)")
	productCreateCmd.Flags().StringArrayVar(&productImageFiles, "image-file", nil, "Local image to upload (repeatable)")
	_ = productCreateCmd.MarkFlagRequired("name")
	_ = productCreateCmd.MarkFlagRequired("price")
	_ = productCreateCmd.MarkFlagRequired("category")

	productCmd.AddCommand(productListCmd, productCreateCmd, productDeleteCmd, productRemoveImageCmd)
	rootCmd.AddCommand(productCmd)
}
