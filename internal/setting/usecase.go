package setting

import (
	"context"
	"encoding/json"

	"github.com/fekuna/boutique-catalog-service/internal/model"
)

type UseCase interface {
	// GetSettings reads through the settings cache; on failure it returns an
	// empty snapshot.
	GetSettings(ctx context.Context) Snapshot
	GetSettingByKey(ctx context.Context, key string) (json.RawMessage, bool)
	// UpdateSetting stores value and drops the cached snapshot. Unlike the
	// other catalog writes its error is returned to the caller.
	UpdateSetting(ctx context.Context, key string, value json.RawMessage, description *string) error
	ListSettings(ctx context.Context) []model.Setting
	InvalidateCache()
}
