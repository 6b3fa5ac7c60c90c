package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/category/repository"
	"github.com/fekuna/boutique-catalog-service/internal/events"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/testutil"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []events.Type
}

func (p *recordingPublisher) Publish(_ context.Context, t events.Type, _ string) {
	p.published = append(p.published, t)
}

// brokenRepo fails every call, standing in for an unreachable backend.
type brokenRepo struct{}

var errBackend = errors.New("connection refused")

func (brokenRepo) Create(context.Context, *model.Category) error { return errBackend }
func (brokenRepo) FindByID(context.Context, string) (*model.Category, error) {
	return nil, errBackend
}
func (brokenRepo) FindBySlug(context.Context, string) (*model.Category, error) {
	return nil, errBackend
}
func (brokenRepo) FindAll(context.Context, *dto.CategoryFilters) ([]model.Category, int, error) {
	return nil, 0, errBackend
}
func (brokenRepo) Update(context.Context, string, *dto.UpdateCategoryInput) (bool, error) {
	return false, errBackend
}
func (brokenRepo) Delete(context.Context, string) error { return errBackend }

func TestCategoryUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	uc := NewCategoryUseCase(repository.NewSQLRepository(testutil.NewDB(t)), pub, logger.NewNop())

	id := uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: "Tissus & Wax", Slug: "tissus-wax"})
	require.NotEmpty(t, id)

	got := uc.GetCategory(ctx, id)
	require.NotNil(t, got)
	assert.Equal(t, "tissus-wax", got.Slug)
	assert.Nil(t, got.Image)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	assert.True(t, uc.UpdateCategory(ctx, id, &dto.UpdateCategoryInput{Description: testutil.StrPtr("Wax")}))
	assert.False(t, uc.UpdateCategory(ctx, "missing", &dto.UpdateCategoryInput{}))

	bySlug := uc.GetCategoryBySlug(ctx, "tissus-wax")
	require.NotNil(t, bySlug)
	assert.Equal(t, "Wax", *bySlug.Description)

	// Duplicate slugs are rejected by the store and reported as "".
	assert.Empty(t, uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: "Autre", Slug: "tissus-wax"}))

	assert.True(t, uc.DeleteCategory(ctx, id))
	assert.Nil(t, uc.GetCategory(ctx, id))

	assert.Equal(t, []events.Type{events.CategoryCreated, events.CategoryUpdated, events.CategoryDeleted}, pub.published)
}

func TestCategoryUseCase_BackendFailuresBecomeSentinels(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	uc := NewCategoryUseCase(brokenRepo{}, pub, logger.NewNop())

	list, count := uc.ListCategories(ctx, nil)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.Zero(t, count)
	assert.Nil(t, uc.GetCategory(ctx, "x"))
	assert.Nil(t, uc.GetCategoryBySlug(ctx, "x"))
	assert.Empty(t, uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: "x", Slug: "x"}))
	assert.False(t, uc.UpdateCategory(ctx, "x", &dto.UpdateCategoryInput{}))
	assert.False(t, uc.DeleteCategory(ctx, "x"))
	assert.Empty(t, pub.published)
}
