// Package workflow drives the admin create/edit/delete forms for categories
// and products. A form is not safe for concurrent use; build one per request
// or per CLI invocation.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/internal/media"
)

type State int

const (
	StateList State = iota
	StateCreating
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrSaveFailed is returned when the store rejected a submitted form. The
// cause has already been logged by the use case.
var ErrSaveFailed = errors.New("could not save")

var errNoStorage = errors.New("no image storage configured")

// ImageUploader is implemented by media.Uploader.
type ImageUploader interface {
	UploadImage(ctx context.Context, file media.File, key string) (string, error)
	UploadMultipleImagesWithProgress(ctx context.Context, files []media.File, folder string, onProgress media.ProgressFunc) ([]string, error)
}

func transition(from State, allowed ...State) error {
	for _, s := range allowed {
		if from == s {
			return nil
		}
	}
	return fmt.Errorf("%w: from %s", errs.ErrInvalidTransition, from)
}

// Deletion is a pending delete that only runs once confirmed.
type Deletion struct {
	id        string
	confirmed bool
	delete    func(ctx context.Context, id string) bool
}

func newDeletion(id string, del func(ctx context.Context, id string) bool) *Deletion {
	return &Deletion{id: id, delete: del}
}

func (d *Deletion) ID() string { return d.id }

func (d *Deletion) Confirm() { d.confirmed = true }

// Execute issues the delete. Without a prior Confirm it returns
// errs.ErrNotConfirmed and touches nothing.
func (d *Deletion) Execute(ctx context.Context) error {
	if !d.confirmed {
		return errs.ErrNotConfirmed
	}
	if !d.delete(ctx, d.id) {
		return fmt.Errorf("delete %s: %w", d.id, ErrSaveFailed)
	}
	return nil
}
