// Package view projects the catalog into display-ready view models. Every
// projection is a pure function over the catalog snapshot; nothing here
// touches the network or durable state.
package view

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/domain"
)

// MediaKind tells a renderer which media block a card carries.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindNone  MediaKind = "none"
)

// Card is a single rendered product tile.
type Card struct {
	ID          string
	Name        string
	Price       string
	Badge       string
	MediaKind   MediaKind
	MediaSource string
	Poster      string
	Features    []string
	// Bullets holds the comma-split description when it has more than one
	// segment; otherwise Paragraph carries the raw text.
	Bullets   []string
	Paragraph string
}

// FeaturedView is the featured-grid projection.
type FeaturedView struct {
	Cards []Card
	// EmptyMessage is set when no product is flagged featured.
	EmptyMessage string
}

// GalleryEntry is a filterable gallery tile with its coarse category tag.
type GalleryEntry struct {
	Card Card
	Tag  string
	// Autoplay marks video entries eligible to start playing on display.
	Autoplay bool
}

const defaultEmptyMessage = "No featured products yet."

// Featured keeps only products flagged featured, ordered by id.
func Featured(catalog domain.Catalog) FeaturedView {
	var cards []Card
	for _, id := range sortedIDs(catalog) {
		product := catalog[id]
		if !product.Featured {
			continue
		}
		cards = append(cards, buildCard(id, product))
	}
	if len(cards) == 0 {
		return FeaturedView{EmptyMessage: defaultEmptyMessage}
	}
	return FeaturedView{Cards: cards}
}

// MainGrid renders the fixed slot list in order. A slot id missing from the
// catalog is logged and skipped; the grid never fails outright.
func MainGrid(catalog domain.Catalog, slotIDs []string, logger *zap.Logger) []Card {
	if logger == nil {
		logger = zap.NewNop()
	}
	var cards []Card
	for _, id := range slotIDs {
		product, ok := catalog[id]
		if !ok {
			logger.Warn("main grid slot missing from catalog", zap.String("product_id", id))
			continue
		}
		cards = append(cards, buildCard(id, product))
	}
	return cards
}

// Gallery keeps products carrying any media field and tags each with its
// coarse filter category. When autoplay is on, video entries are marked
// eligible to start playing on display.
func Gallery(catalog domain.Catalog, autoplay bool) []GalleryEntry {
	var entries []GalleryEntry
	for _, id := range sortedIDs(catalog) {
		product := catalog[id]
		if !product.HasMedia() {
			continue
		}
		card := buildCard(id, product)
		entries = append(entries, GalleryEntry{
			Card:     card,
			Tag:      CategoryTag(product.Category),
			Autoplay: autoplay && card.MediaKind == MediaKindVideo,
		})
	}
	return entries
}

// CategoryTag maps free-text category to a coarse filter tag. The rules are
// ordered substring checks on the lowercased text; the first match wins, so
// "PUBG UC" tags uc rather than pubg.
func CategoryTag(category string) string {
	c := strings.ToLower(category)
	has := func(token string) bool { return strings.Contains(c, token) }
	switch {
	case has("pubg") && has("uc"):
		return "uc"
	case has("pubg"):
		return "pubg"
	case has("efootball") && has("coins"):
		return "coins"
	case has("efootball"):
		return "efootball"
	case has("uc"):
		return "uc"
	case has("coins"):
		return "coins"
	default:
		return "other"
	}
}

func buildCard(id string, product domain.Product) Card {
	card := Card{
		ID:       id,
		Name:     product.Name,
		Price:    product.Price,
		Badge:    product.Category,
		Features: product.Features,
	}

	switch {
	case product.IsVideo():
		card.MediaKind = MediaKindVideo
		card.MediaSource = firstNonEmpty(product.VideoURL, product.Video)
		card.Poster = firstNonEmpty(product.Poster, product.Thumbnail)
	case product.Image != "" || product.Thumbnail != "":
		card.MediaKind = MediaKindImage
		card.MediaSource = firstNonEmpty(product.Image, product.Thumbnail)
	default:
		card.MediaKind = MediaKindNone
	}

	if bullets := descriptionBullets(product.Description); len(bullets) > 1 {
		card.Bullets = bullets
	} else {
		card.Paragraph = strings.TrimSpace(product.Description)
	}
	return card
}

// descriptionBullets splits on commas and drops empty segments.
func descriptionBullets(description string) []string {
	var bullets []string
	for _, segment := range strings.Split(description, ",") {
		if segment = strings.TrimSpace(segment); segment != "" {
			bullets = append(bullets, segment)
		}
	}
	return bullets
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sortedIDs(catalog domain.Catalog) []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
