// Package i18n resolves and persists the user's display language and the
// session preferences that ride along with it.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/azadstore/storefront/internal/client/state"
)

// Supported display languages: Somali (default), English, Swahili.
var supported = []language.Tag{
	language.MustParse("so"),
	language.English,
	language.Swahili,
}

var matcher = language.NewMatcher(supported)

// DefaultLanguage is used when nothing is persisted and nothing matches.
const DefaultLanguage = "so"

// Preferences holds the persisted per-session choices.
type Preferences struct {
	store *state.Store
}

// NewPreferences wraps the durable store.
func NewPreferences(store *state.Store) (*Preferences, error) {
	if store == nil {
		return nil, fmt.Errorf("i18n: state store is required")
	}
	return &Preferences{store: store}, nil
}

// Language returns the persisted choice, or the best supported match for the
// given fallback hint (e.g. the document's declared language), or Somali.
func (p *Preferences) Language(hint string) string {
	var saved string
	if p.store.Get(state.KeyLanguage, &saved) && saved != "" {
		return Resolve(saved)
	}
	if hint != "" {
		return Resolve(hint)
	}
	return DefaultLanguage
}

// SetLanguage persists the chosen language, normalised to a supported tag.
func (p *Preferences) SetLanguage(lang string) error {
	return p.store.Put(state.KeyLanguage, Resolve(lang))
}

// Autoplay reports the persisted video autoplay preference; off by default.
func (p *Preferences) Autoplay() bool {
	var enabled bool
	p.store.Get(state.KeyAutoplay, &enabled)
	return enabled
}

// SetAutoplay persists the autoplay preference.
func (p *Preferences) SetAutoplay(enabled bool) error {
	return p.store.Put(state.KeyAutoplay, enabled)
}

// Resolve maps an arbitrary BCP 47-ish value to the closest supported
// language, falling back to Somali.
func Resolve(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLanguage
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	base, _ := supported[index].Base()
	return base.String()
}
