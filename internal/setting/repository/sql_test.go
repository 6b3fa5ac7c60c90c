package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSetting(id, key, value string, description *string, at time.Time) *model.Setting {
	return &model.Setting{
		BaseModel:   model.BaseModel{ID: id, CreatedAt: at, UpdatedAt: at},
		Key:         key,
		Value:       model.JSON(value),
		Description: description,
	}
}

func TestSQLRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRepository(testutil.NewDB(t))
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	require.NoError(t, repo.Upsert(ctx, newSetting("s1", "collection_badge", `{"text":"A","visible":true}`, testutil.StrPtr("Badge"), t0)))
	require.NoError(t, repo.Upsert(ctx, newSetting("s2", "collection_badge", `{"text":"B","visible":false}`, nil, t1)))

	got, err := repo.FindByKey(ctx, "collection_badge")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)
	assert.JSONEq(t, `{"text":"B","visible":false}`, string(got.Value))
	require.NotNil(t, got.Description)
	assert.Equal(t, "Badge", *got.Description)
	assert.True(t, got.CreatedAt.Equal(t0))
	assert.True(t, got.UpdatedAt.Equal(t1))
}

func TestSQLRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRepository(testutil.NewDB(t))
	now := time.Now().UTC()

	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Upsert(ctx, newSetting("s1", "site_info", `{"name":"Soumaya"}`, nil, now)))
	require.NoError(t, repo.Upsert(ctx, newSetting("s2", "about_page", `{"title":"Histoire"}`, nil, now)))

	list, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "about_page", list[0].Key)
	assert.Equal(t, "site_info", list[1].Key)

	missing, err := repo.FindByKey(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLRepository_RejectsInvalidJSON(t *testing.T) {
	repo := NewSQLRepository(testutil.NewDB(t))
	err := repo.Upsert(context.Background(), newSetting("s1", "site_info", `{broken`, nil, time.Now()))
	assert.Error(t, err)
}
