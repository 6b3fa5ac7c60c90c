package workflow

import (
	"context"
	"strconv"
	"strings"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/internal/media"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
)

const productImageFolder = "products"

// ProductFields mirrors the admin form. Price is kept as typed and parsed on
// submit.
type ProductFields struct {
	Name        string
	Description string
	Price       string
	Category    string
	SubCategory string
	InStock     bool
	Featured    bool
}

type ProductForm struct {
	uc         product.UseCase
	uploader   ImageUploader
	onProgress media.ProgressFunc

	state     State
	returnTo  State
	editingID string
	existing  []string
	fields    ProductFields
	newFiles  []media.File
	err       error
}

func NewProductForm(uc product.UseCase, uploader ImageUploader) *ProductForm {
	return &ProductForm{uc: uc, uploader: uploader, state: StateList}
}

func (f *ProductForm) State() State { return f.state }
func (f *ProductForm) Fields() ProductFields { return f.fields }
func (f *ProductForm) EditingID() string { return f.editingID }
func (f *ProductForm) Err() error { return f.err }

// Images returns the images already stored on the product being edited.
func (f *ProductForm) Images() []string { return append([]string(nil), f.existing...) }

// OnProgress registers the upload progress callback used by Submit.
func (f *ProductForm) OnProgress(fn media.ProgressFunc) { f.onProgress = fn }

// Create opens an empty form. New products are in stock by default.
func (f *ProductForm) Create(defaultCategory string) error {
	if err := transition(f.state, StateList); err != nil {
		return err
	}
	f.reset()
	f.state = StateCreating
	f.fields = ProductFields{Category: defaultCategory, InStock: true}
	return nil
}

func (f *ProductForm) Edit(p *model.Product) error {
	if err := transition(f.state, StateList); err != nil {
		return err
	}
	f.reset()
	f.state = StateEditing
	f.editingID = p.ID
	f.existing = append([]string(nil), p.Images...)
	f.fields = ProductFields{
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Category:    p.Category,
		InStock:     p.InStock,
		Featured:    p.Featured,
	}
	if p.SubCategory != nil {
		f.fields.SubCategory = *p.SubCategory
	}
	return nil
}

func (f *ProductForm) SetFields(fields ProductFields) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.fields = fields
	return nil
}

// SetImages replaces the list of already stored image URLs, e.g. to reorder
// them or to pass URLs uploaded beforehand.
func (f *ProductForm) SetImages(urls []string) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.existing = append([]string(nil), urls...)
	return nil
}

// AttachImages queues files for upload on submit, after the existing images.
func (f *ProductForm) AttachImages(files ...media.File) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	for _, file := range files {
		if err := media.ValidateName(file.Name); err != nil {
			return err
		}
	}
	f.newFiles = append(f.newFiles, files...)
	return nil
}

func (f *ProductForm) Cancel() error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.reset()
	return nil
}

func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (f *ProductForm) validate() (float64, error) {
	v := &errs.ValidationError{}
	if strings.TrimSpace(f.fields.Name) == "" {
		v.Add("name", "required")
	}
	price, ok := parsePrice(f.fields.Price)
	switch {
	case strings.TrimSpace(f.fields.Price) == "":
		v.Add("price", "required")
	case !ok:
		v.Add("price", "must be a number")
	case price < 0:
		v.Add("price", "must not be negative")
	}
	if strings.TrimSpace(f.fields.Category) == "" {
		v.Add("category", "required")
	}
	return price, v.OrNil()
}

// Submit validates the fields, uploads the queued files one by one, then adds
// or updates the product. Uploaded files are not removed when a later step
// fails.
func (f *ProductForm) Submit(ctx context.Context) (string, error) {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return "", err
	}
	price, err := f.validate()
	if err != nil {
		f.err = err
		return "", err
	}

	f.returnTo = f.state
	f.state = StateSubmitting

	id, err := f.save(ctx, price)
	if err != nil {
		f.state = f.returnTo
		f.err = err
		return "", err
	}
	f.reset()
	return id, nil
}

func (f *ProductForm) save(ctx context.Context, price float64) (string, error) {
	uploaded := []string{}
	if len(f.newFiles) > 0 {
		if f.uploader == nil {
			return "", errNoStorage
		}
		urls, err := f.uploader.UploadMultipleImagesWithProgress(ctx, f.newFiles, productImageFolder, f.onProgress)
		if err != nil {
			return "", err
		}
		uploaded = urls
	}

	images := append(append([]string{}, f.existing...), uploaded...)
	name := strings.TrimSpace(f.fields.Name)
	var subCategory *string
	if s := strings.TrimSpace(f.fields.SubCategory); s != "" {
		subCategory = &s
	}

	if f.returnTo == StateCreating {
		id := f.uc.AddProduct(ctx, &dto.CreateProductInput{
			Name:        name,
			Description: f.fields.Description,
			Price:       price,
			Category:    f.fields.Category,
			SubCategory: subCategory,
			Images:      images,
			InStock:     f.fields.InStock,
			Featured:    f.fields.Featured,
		})
		if id == "" {
			return "", ErrSaveFailed
		}
		return id, nil
	}

	emptySub := ""
	if subCategory == nil {
		subCategory = &emptySub
	}
	ok := f.uc.UpdateProduct(ctx, f.editingID, &dto.UpdateProductInput{
		Name:        &name,
		Description: &f.fields.Description,
		Price:       &price,
		Category:    &f.fields.Category,
		SubCategory: subCategory,
		Images:      &images,
		InStock:     &f.fields.InStock,
		Featured:    &f.fields.Featured,
	})
	if !ok {
		return "", ErrSaveFailed
	}
	return f.editingID, nil
}

func (f *ProductForm) RequestDelete(id string) *Deletion {
	return newDeletion(id, f.uc.DeleteProduct)
}

func (f *ProductForm) reset() {
	f.state = StateList
	f.editingID = ""
	f.existing = nil
	f.fields = ProductFields{}
	f.newFiles = nil
	f.err = nil
}
