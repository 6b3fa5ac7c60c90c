package usecase

import (
	"context"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/category"
	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/events"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo      category.Repository
	publisher events.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewCategoryUseCase(repo category.Repository, publisher events.Publisher, log logger.ZapLogger) category.UseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &categoryUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int) {
	if filters == nil {
		filters = &dto.CategoryFilters{}
	}
	categories, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		uc.logger.Error("Error fetching categories", zap.Error(err))
		return []model.Category{}, 0
	}
	return categories, count
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) *model.Category {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("Error fetching category", zap.String("id", id), zap.Error(err))
		return nil
	}
	return cat
}

func (uc *categoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) *model.Category {
	cat, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		uc.logger.Error("Error fetching category by slug", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	return cat
}

func (uc *categoryUseCase) AddCategory(ctx context.Context, input *dto.CreateCategoryInput) string {
	now := uc.now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Image:       input.Image,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("Error adding category", zap.String("slug", input.Slug), zap.Error(err))
		return ""
	}

	uc.publisher.Publish(ctx, events.CategoryCreated, cat.ID)
	return cat.ID
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id string, input *dto.UpdateCategoryInput) bool {
	found, err := uc.repo.Update(ctx, id, input)
	if err != nil {
		uc.logger.Error("Error updating category", zap.String("id", id), zap.Error(err))
		return false
	}
	if !found {
		uc.logger.Warn("Category to update not found", zap.String("id", id))
		return false
	}

	uc.publisher.Publish(ctx, events.CategoryUpdated, id)
	return true
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) bool {
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Error deleting category", zap.String("id", id), zap.Error(err))
		return false
	}

	uc.publisher.Publish(ctx, events.CategoryDeleted, id)
	return true
}
