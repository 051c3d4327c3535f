package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID is an opaque record identifier. Identifiers are compared as strings
// everywhere; legacy clients emitted epoch-millisecond numbers, so decoding
// accepts either form and normalises to a string.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// MediaType enumerates the media kinds a product can carry.
type MediaType string

const (
	// MediaTypeImage marks products presented with a still image.
	MediaTypeImage MediaType = "image"
	// MediaTypeVideo marks products presented with a video clip.
	MediaTypeVideo MediaType = "video"
)

// Package is one fixed purchase tier for UC/coin style products.
type Package struct {
	Qty   string `json:"qty"`
	Price string `json:"price"`
}

// Product is a single catalog record. Prices are display strings, not parsed
// numbers; every field other than Name and Price is optional and renderers
// treat absent fields as "not present".
type Product struct {
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	Video        string    `json:"video,omitempty"`
	Poster       string    `json:"poster,omitempty"`
	MediaType    MediaType `json:"mediaType,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Features     []string  `json:"features,omitempty"`
	Featured     bool      `json:"featured,omitempty"`
	LimitedOffer bool      `json:"limitedOffer,omitempty"`
	Packages     []Package `json:"packages,omitempty"`
}

// HasMedia reports whether the product carries anything the gallery can show.
func (p Product) HasMedia() bool {
	return p.MediaType != "" || p.VideoURL != "" || p.Thumbnail != ""
}

// IsVideo reports whether the product should present as video. Video takes
// precedence over image whenever either signal is present.
func (p Product) IsVideo() bool {
	return p.MediaType == MediaTypeVideo || p.VideoURL != ""
}

// Catalog maps product identifier to product record. Identifiers are unique
// within the catalog file at all times.
type Catalog map[string]Product

// CartEntry is one line of the browser-session cart. It never leaves the
// client's durable store as-is; only the derived Order does.
type CartEntry struct {
	ProductID ID     `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
	Qty       int    `json:"qty"`
}

// OrderItem is one denormalised line of a recorded order.
type OrderItem struct {
	Name      string `json:"name"`
	ProductID ID     `json:"id"`
	Price     string `json:"price"`
	Qty       int    `json:"qty"`
}

// OrderStatus describes the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending marks orders awaiting manual fulfilment.
	OrderStatusPending OrderStatus = "pending"
)

// Order is a completed purchase intent. It is created client-side; the server
// assigns no new identity and trusts the client-supplied id.
type Order struct {
	ID     ID          `json:"id"`
	Items  []OrderItem `json:"items"`
	Total  string      `json:"total"`
	Date   time.Time   `json:"date"`
	Status OrderStatus `json:"status"`
}

// Review is a client-submitted rating. ProductID is empty for store-wide
// reviews; those never contribute to any product's average.
type Review struct {
	ID        ID        `json:"id"`
	ProductID ID        `json:"productId,omitempty"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Verified  bool      `json:"verified"`
}

// AdminConfig is the single flat-file admin credential record. Credentials are
// stored and compared in plaintext; hardening is an explicit non-goal.
type AdminConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const (
	// DefaultAdminUsername is used when no admin config file exists yet.
	DefaultAdminUsername = "isma"
	// DefaultAdminPassword is used when no admin config file exists yet.
	DefaultAdminPassword = "123+"
)

// DefaultAdminConfig returns the fallback credentials applied when the admin
// config file is absent.
func DefaultAdminConfig() AdminConfig {
	return AdminConfig{Username: DefaultAdminUsername, Password: DefaultAdminPassword}
}

// ParsePrice extracts the numeric amount of a display price string: every
// character that is not a digit or a dot is stripped, then the longest valid
// leading number wins, so "v1.2.3" is worth 1.2. Nothing numeric is worth
// zero.
func ParsePrice(price string) float64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	stripped := b.String()
	end, sawDot, sawDigit := 0, false, false
	for end < len(stripped) {
		if stripped[end] == '.' {
			if sawDot {
				break
			}
			sawDot = true
		} else {
			sawDigit = true
		}
		end++
	}
	if !sawDigit {
		return 0
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(stripped[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}
