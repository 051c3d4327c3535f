package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azadstore/storefront/internal/domain"
)

func TestFeaturedFiltersFlag(t *testing.T) {
	catalog := domain.Catalog{
		"253": {Name: "PUBG 600 UC", Featured: true},
		"254": {Name: "PUBG 1500 UC"},
		"305": {Name: "eFootball 500 Coins", Featured: true},
	}

	featured := Featured(catalog)
	require.Len(t, featured.Cards, 2)
	for _, card := range featured.Cards {
		_, inCatalog := catalog[card.ID]
		assert.True(t, inCatalog, "featured output must come from the catalog")
		assert.True(t, catalog[card.ID].Featured)
	}
}

func TestFeaturedEmptyState(t *testing.T) {
	featured := Featured(domain.Catalog{"1": {Name: "Plain"}})
	assert.Empty(t, featured.Cards)
	assert.NotEmpty(t, featured.EmptyMessage)
}

func TestMainGridSkipsMissingSlots(t *testing.T) {
	catalog := domain.Catalog{
		"253": {Name: "PUBG 600 UC"},
		"305": {Name: "eFootball 500 Coins"},
	}

	cards := MainGrid(catalog, []string{"253", "254", "305", "306"}, nil)
	require.Len(t, cards, 2)
	assert.Equal(t, "253", cards[0].ID)
	assert.Equal(t, "305", cards[1].ID, "slot order is preserved around gaps")
}

func TestCardVideoPrecedence(t *testing.T) {
	catalog := domain.Catalog{
		"v": {Name: "Promo", Image: "images/a.png", VideoURL: "videos/promo.mp4", Poster: "images/poster.png"},
	}

	cards := MainGrid(catalog, []string{"v"}, nil)
	require.Len(t, cards, 1)
	assert.Equal(t, MediaKindVideo, cards[0].MediaKind, "video wins over image")
	assert.Equal(t, "videos/promo.mp4", cards[0].MediaSource)
	assert.Equal(t, "images/poster.png", cards[0].Poster)
}

func TestCardDescriptionShape(t *testing.T) {
	t.Run("comma segments become bullets", func(t *testing.T) {
		cards := MainGrid(domain.Catalog{"1": {Description: "Instant delivery, Safe top-up, 24/7 support"}}, []string{"1"}, nil)
		require.Len(t, cards, 1)
		assert.Equal(t, []string{"Instant delivery", "Safe top-up", "24/7 support"}, cards[0].Bullets)
		assert.Empty(t, cards[0].Paragraph)
	})

	t.Run("single segment stays a paragraph", func(t *testing.T) {
		cards := MainGrid(domain.Catalog{"1": {Description: "Top-rated account"}}, []string{"1"}, nil)
		require.Len(t, cards, 1)
		assert.Empty(t, cards[0].Bullets)
		assert.Equal(t, "Top-rated account", cards[0].Paragraph)
	})

	t.Run("trailing comma is not a bullet list", func(t *testing.T) {
		cards := MainGrid(domain.Catalog{"1": {Description: "Top-rated account,"}}, []string{"1"}, nil)
		require.Len(t, cards, 1)
		assert.Empty(t, cards[0].Bullets)
		assert.Equal(t, "Top-rated account,", cards[0].Paragraph)
	})
}

func TestGalleryKeepsOnlyMediaEntries(t *testing.T) {
	catalog := domain.Catalog{
		"1": {Name: "Video", MediaType: domain.MediaTypeVideo, VideoURL: "videos/x.mp4", Category: "PUBG"},
		"2": {Name: "Thumb", Thumbnail: "images/x.png", Category: "eFootball Coins"},
		"3": {Name: "Bare"},
	}

	entries := Gallery(catalog, false)
	require.Len(t, entries, 2)
	assert.Equal(t, "pubg", entries[0].Tag)
	assert.Equal(t, "coins", entries[1].Tag)
	for _, entry := range entries {
		assert.False(t, entry.Autoplay)
	}
}

func TestGalleryAutoplayMarksOnlyVideos(t *testing.T) {
	catalog := domain.Catalog{
		"1": {Name: "Video", MediaType: domain.MediaTypeVideo, VideoURL: "videos/x.mp4"},
		"2": {Name: "Thumb", Thumbnail: "images/x.png"},
	}

	entries := Gallery(catalog, true)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Autoplay)
	assert.False(t, entries[1].Autoplay)
}

func TestCategoryTag(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"PUBG UC", "uc"},
		{"PUBG Account", "pubg"},
		{"eFootball Coins", "coins"},
		{"eFootball", "efootball"},
		{"UC top-up", "uc"},
		{"Coins bundle", "coins"},
		{"Random", "other"},
		{"", "other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryTag(tc.category), "category %q", tc.category)
	}
}
