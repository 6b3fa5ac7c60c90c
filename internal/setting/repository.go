package setting

import (
	"context"

	"github.com/fekuna/boutique-catalog-service/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Setting, error)
	FindByKey(ctx context.Context, key string) (*model.Setting, error)
	// Upsert writes value under s.Key, inserting the row when the key is new.
	// A nil Description keeps the stored one.
	Upsert(ctx context.Context, s *model.Setting) error
}
