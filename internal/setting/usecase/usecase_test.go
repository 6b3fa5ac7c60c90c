package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/internal/events"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	"github.com/fekuna/boutique-catalog-service/internal/setting/repository"
	"github.com/fekuna/boutique-catalog-service/internal/testutil"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []string
}

func (p *recordingPublisher) Publish(_ context.Context, t events.Type, id string) {
	p.published = append(p.published, string(t)+":"+id)
}

// countingRepo counts FindAll calls on top of a real repository.
type countingRepo struct {
	setting.Repository
	findAll int
	fail    error
}

func (r *countingRepo) FindAll(ctx context.Context) ([]model.Setting, error) {
	r.findAll++
	if r.fail != nil {
		return nil, r.fail
	}
	return r.Repository.FindAll(ctx)
}

func (r *countingRepo) Upsert(ctx context.Context, s *model.Setting) error {
	if r.fail != nil {
		return r.fail
	}
	return r.Repository.Upsert(ctx, s)
}

func newUseCase(t *testing.T) (setting.UseCase, *countingRepo, *recordingPublisher) {
	repo := &countingRepo{Repository: repository.NewSQLRepository(testutil.NewDB(t))}
	pub := &recordingPublisher{}
	return NewSettingUseCase(repo, time.Minute, pub, logger.NewNop()), repo, pub
}

func TestSettingUseCase_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	uc, repo, pub := newUseCase(t)

	require.NoError(t, uc.UpdateSetting(ctx, setting.KeySiteInfo, json.RawMessage(`{"name":"Soumaya"}`), nil))

	first := uc.GetSettings(ctx)
	second := uc.GetSettings(ctx)
	assert.Equal(t, 1, repo.findAll)
	assert.Equal(t, first, second)

	info, ok := first.SiteInfo()
	require.True(t, ok)
	assert.Equal(t, "Soumaya", info.Name)

	// A read after a write observes the write.
	require.NoError(t, uc.UpdateSetting(ctx, setting.KeySiteInfo, json.RawMessage(`{"name":"Soumaya Prestige"}`), nil))
	info, ok = uc.GetSettings(ctx).SiteInfo()
	require.True(t, ok)
	assert.Equal(t, "Soumaya Prestige", info.Name)
	assert.Equal(t, 2, repo.findAll)

	assert.Equal(t, []string{"setting.updated:site_info", "setting.updated:site_info"}, pub.published)
}

func TestSettingUseCase_GetSettingByKey(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)

	require.NoError(t, uc.UpdateSetting(ctx, "promo_banner", json.RawMessage(`{"text":"Soldes"}`), nil))

	raw, ok := uc.GetSettingByKey(ctx, "promo_banner")
	require.True(t, ok)
	assert.JSONEq(t, `{"text":"Soldes"}`, string(raw))

	_, ok = uc.GetSettingByKey(ctx, setting.KeyHomeHero)
	assert.False(t, ok)

	assert.Contains(t, uc.GetSettings(ctx).Unknown(), "promo_banner")
}

func TestSettingUseCase_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	uc, repo, pub := newUseCase(t)

	err := uc.UpdateSetting(ctx, "", json.RawMessage(`{}`), nil)
	assert.ErrorIs(t, err, errs.ErrValidation)

	err = uc.UpdateSetting(ctx, setting.KeySiteInfo, json.RawMessage(`{nope`), nil)
	assert.ErrorIs(t, err, errs.ErrValidation)

	backend := errors.New("connection refused")
	repo.fail = backend
	err = uc.UpdateSetting(ctx, setting.KeySiteInfo, json.RawMessage(`{}`), nil)
	assert.ErrorIs(t, err, backend)
	assert.Empty(t, pub.published)
}

func TestSettingUseCase_ReadFailureGivesEmptySnapshot(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newUseCase(t)
	repo.fail = errors.New("connection refused")

	s := uc.GetSettings(ctx)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Empty(t, uc.ListSettings(ctx))

	// Failures are not cached.
	repo.fail = nil
	uc.GetSettings(ctx)
	assert.Equal(t, 3, repo.findAll)
}

func TestSettingUseCase_InvalidateCache(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newUseCase(t)

	uc.GetSettings(ctx)
	uc.InvalidateCache()
	uc.GetSettings(ctx)
	assert.Equal(t, 2, repo.findAll)
}
