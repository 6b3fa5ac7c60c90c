package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/category"
	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/internal/media"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/slug"
)

type CategoryFields struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

type CategoryForm struct {
	uc       category.UseCase
	uploader ImageUploader
	now      func() time.Time

	state     State
	returnTo  State
	editingID string
	fields    CategoryFields
	imageFile *media.File
	err       error
}

// NewCategoryForm starts in the list state. uploader may be nil when no
// image file will be attached.
func NewCategoryForm(uc category.UseCase, uploader ImageUploader) *CategoryForm {
	return &CategoryForm{uc: uc, uploader: uploader, now: time.Now, state: StateList}
}

func (f *CategoryForm) State() State { return f.state }
func (f *CategoryForm) Fields() CategoryFields { return f.fields }
func (f *CategoryForm) EditingID() string { return f.editingID }
func (f *CategoryForm) Err() error { return f.err }

// Create opens an empty form.
func (f *CategoryForm) Create() error {
	if err := transition(f.state, StateList); err != nil {
		return err
	}
	f.reset()
	f.state = StateCreating
	return nil
}

// Edit opens the form on an existing category.
func (f *CategoryForm) Edit(c *model.Category) error {
	if err := transition(f.state, StateList); err != nil {
		return err
	}
	f.reset()
	f.state = StateEditing
	f.editingID = c.ID
	f.fields = CategoryFields{Name: c.Name, Slug: c.Slug}
	if c.Description != nil {
		f.fields.Description = *c.Description
	}
	if c.Image != nil {
		f.fields.ImageURL = *c.Image
	}
	return nil
}

// SetName updates the name. While creating, the slug follows the name.
func (f *CategoryForm) SetName(name string) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.fields.Name = name
	if f.state == StateCreating {
		f.fields.Slug = slug.Make(name)
	}
	return nil
}

func (f *CategoryForm) SetSlug(s string) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.fields.Slug = s
	return nil
}

func (f *CategoryForm) SetDescription(d string) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.fields.Description = d
	return nil
}

func (f *CategoryForm) SetImageURL(u string) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.fields.ImageURL = u
	return nil
}

// AttachImage replaces the image with file on submit.
func (f *CategoryForm) AttachImage(file media.File) error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	if err := media.ValidateName(file.Name); err != nil {
		return err
	}
	f.imageFile = &file
	return nil
}

// Cancel closes the form without saving.
func (f *CategoryForm) Cancel() error {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return err
	}
	f.reset()
	return nil
}

func (f *CategoryForm) validate() error {
	v := &errs.ValidationError{}
	if strings.TrimSpace(f.fields.Name) == "" {
		v.Add("name", "required")
	}
	switch {
	case f.fields.Slug == "":
		v.Add("slug", "required")
	case !slug.Valid(f.fields.Slug):
		v.Add("slug", "lowercase letters, digits and single hyphens only")
	}
	return v.OrNil()
}

// Submit validates, uploads the attached image, then adds or updates the
// category. On success the form is back in the list state and the id of the
// saved category is returned. On failure the form returns to the state it was
// submitted from with Err set.
func (f *CategoryForm) Submit(ctx context.Context) (string, error) {
	if err := transition(f.state, StateCreating, StateEditing); err != nil {
		return "", err
	}
	if err := f.validate(); err != nil {
		f.err = err
		return "", err
	}

	f.returnTo = f.state
	f.state = StateSubmitting

	id, err := f.save(ctx)
	if err != nil {
		f.state = f.returnTo
		f.err = err
		return "", err
	}
	f.reset()
	return id, nil
}

func (f *CategoryForm) save(ctx context.Context) (string, error) {
	imageURL := f.fields.ImageURL
	if f.imageFile != nil {
		if f.uploader == nil {
			return "", errNoStorage
		}
		key := fmt.Sprintf("categories/%d_%s", f.now().UnixMilli(), f.imageFile.Name)
		u, err := f.uploader.UploadImage(ctx, *f.imageFile, key)
		if err != nil {
			return "", err
		}
		imageURL = u
	}

	description := f.fields.Description
	if f.returnTo == StateCreating {
		id := f.uc.AddCategory(ctx, &dto.CreateCategoryInput{
			Name:        strings.TrimSpace(f.fields.Name),
			Slug:        f.fields.Slug,
			Description: &description,
			Image:       &imageURL,
		})
		if id == "" {
			return "", ErrSaveFailed
		}
		return id, nil
	}

	name := strings.TrimSpace(f.fields.Name)
	s := f.fields.Slug
	ok := f.uc.UpdateCategory(ctx, f.editingID, &dto.UpdateCategoryInput{
		Name:        &name,
		Slug:        &s,
		Description: &description,
		Image:       &imageURL,
	})
	if !ok {
		return "", ErrSaveFailed
	}
	return f.editingID, nil
}

// RequestDelete prepares the deletion of category id; it runs only after
// Confirm.
func (f *CategoryForm) RequestDelete(id string) *Deletion {
	return newDeletion(id, f.uc.DeleteCategory)
}

func (f *CategoryForm) reset() {
	f.state = StateList
	f.editingID = ""
	f.fields = CategoryFields{}
	f.imageFile = nil
	f.err = nil
}
