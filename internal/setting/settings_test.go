package setting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_TypedAccessors(t *testing.T) {
	s := Snapshot{
		KeySiteInfo:        json.RawMessage(`{"name":"Soumaya","whatsapp":{"ligne1":"221700000001","ligne2":"221700000002"}}`),
		KeyCollectionBadge: json.RawMessage(`{"text":"Tabaski","visible":false}`),
		KeyHomeHero:        json.RawMessage(`"not an object"`),
		KeyAboutPage:       json.RawMessage(`null`),
		"promo":            json.RawMessage(`[1,2]`),
	}

	info, ok := s.SiteInfo()
	require.True(t, ok)
	assert.Equal(t, "221700000002", info.Whatsapp.Ligne2)

	badge, ok := s.CollectionBadge()
	require.True(t, ok)
	assert.False(t, badge.Visible)

	_, ok = s.HomeHero()
	assert.False(t, ok, "malformed values fall back")

	_, ok = s.AboutPage()
	assert.False(t, ok, "null counts as missing")

	_, ok = s.ProductsHero()
	assert.False(t, ok)

	assert.Equal(t, map[string]json.RawMessage{"promo": json.RawMessage(`[1,2]`)}, s.Unknown())
}

func TestDefaults_CoverEveryKnownKey(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Defaults() {
		assert.True(t, IsKnownKey(d.Key), d.Key)
		_, err := json.Marshal(d.Value)
		assert.NoError(t, err)
		seen[d.Key] = true
	}
	assert.Len(t, seen, len(knownKeys))
	assert.Equal(t, "221771494747", DefaultSiteInfo.Whatsapp.Ligne1)
}
