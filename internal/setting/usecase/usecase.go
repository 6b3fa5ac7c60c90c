package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/internal/events"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	"github.com/fekuna/boutique-catalog-service/internal/setting/cache"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type settingUseCase struct {
	repo      setting.Repository
	cache     *cache.Cache
	publisher events.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

// NewSettingUseCase wires a settings cache of the given ttl in front of repo.
func NewSettingUseCase(repo setting.Repository, ttl time.Duration, publisher events.Publisher, log logger.ZapLogger) setting.UseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	uc := &settingUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
	uc.cache = cache.New(uc.load, ttl, nil)
	return uc
}

func (uc *settingUseCase) load(ctx context.Context) (setting.Snapshot, error) {
	rows, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make(setting.Snapshot, len(rows))
	for _, row := range rows {
		snapshot[row.Key] = row.Value.Raw()
	}
	return snapshot, nil
}

func (uc *settingUseCase) GetSettings(ctx context.Context) setting.Snapshot {
	s, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Error("Error fetching settings", zap.Error(err))
		return setting.Snapshot{}
	}
	return s
}

func (uc *settingUseCase) GetSettingByKey(ctx context.Context, key string) (json.RawMessage, bool) {
	return uc.GetSettings(ctx).Raw(key)
}

func (uc *settingUseCase) UpdateSetting(ctx context.Context, key string, value json.RawMessage, description *string) error {
	// Dropped whatever the outcome: a partial write must not stay hidden
	// behind a stale snapshot.
	defer uc.cache.Invalidate()

	if key == "" {
		return (&errs.ValidationError{}).Add("key", "required")
	}
	if !json.Valid(value) {
		return (&errs.ValidationError{}).Add("value", "must be valid JSON")
	}

	now := uc.now()
	row := &model.Setting{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Key:         key,
		Value:       model.JSON(value),
		Description: description,
	}
	if err := uc.repo.Upsert(ctx, row); err != nil {
		uc.logger.Error("Error updating setting", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("update setting %s: %w", key, err)
	}

	uc.publisher.Publish(ctx, events.SettingUpdated, key)
	return nil
}

func (uc *settingUseCase) ListSettings(ctx context.Context) []model.Setting {
	rows, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("Error listing settings", zap.Error(err))
		return []model.Setting{}
	}
	return rows
}

func (uc *settingUseCase) InvalidateCache() {
	uc.cache.Invalidate()
}
