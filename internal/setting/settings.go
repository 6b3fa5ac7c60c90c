package setting

import "encoding/json"

// Known setting keys. Any other key is kept as raw JSON.
const (
	KeySiteInfo          = "site_info"
	KeyHomeHero          = "home_hero"
	KeyProductsHero      = "products_hero"
	KeyAboutPage         = "about_page"
	KeyCollectionBadge   = "collection_badge"
	KeyCategoriesSection = "categories_section"
)

var knownKeys = map[string]bool{
	KeySiteInfo:          true,
	KeyHomeHero:          true,
	KeyProductsHero:      true,
	KeyAboutPage:         true,
	KeyCollectionBadge:   true,
	KeyCategoriesSection: true,
}

func IsKnownKey(key string) bool {
	return knownKeys[key]
}

type Whatsapp struct {
	Ligne1 string `json:"ligne1"`
	Ligne2 string `json:"ligne2"`
}

type SiteInfo struct {
	Name     string   `json:"name"`
	Whatsapp Whatsapp `json:"whatsapp"`
	Email    string   `json:"email"`
	Address  string   `json:"address"`
}

type HomeHero struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
	ImageURL   string `json:"imageUrl"`
}

type ProductsHero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

type AboutPage struct {
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

type CollectionBadge struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

type CategoriesSection struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// Snapshot is the key -> value map of every stored setting.
type Snapshot map[string]json.RawMessage

// Raw returns the stored document for key, known or not.
func (s Snapshot) Raw(key string) (json.RawMessage, bool) {
	v, ok := s[key]
	if !ok || len(v) == 0 || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// Unknown returns the entries whose key has no typed accessor.
func (s Snapshot) Unknown() map[string]json.RawMessage {
	out := map[string]json.RawMessage{}
	for k, v := range s {
		if !IsKnownKey(k) {
			out[k] = v
		}
	}
	return out
}

func decode[T any](s Snapshot, key string) (T, bool) {
	var v T
	raw, ok := s.Raw(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

func (s Snapshot) SiteInfo() (SiteInfo, bool) { return decode[SiteInfo](s, KeySiteInfo) }

func (s Snapshot) HomeHero() (HomeHero, bool) { return decode[HomeHero](s, KeyHomeHero) }

func (s Snapshot) ProductsHero() (ProductsHero, bool) {
	return decode[ProductsHero](s, KeyProductsHero)
}

func (s Snapshot) AboutPage() (AboutPage, bool) { return decode[AboutPage](s, KeyAboutPage) }

func (s Snapshot) CollectionBadge() (CollectionBadge, bool) {
	return decode[CollectionBadge](s, KeyCollectionBadge)
}

func (s Snapshot) CategoriesSection() (CategoriesSection, bool) {
	return decode[CategoriesSection](s, KeyCategoriesSection)
}
