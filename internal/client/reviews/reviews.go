// Package reviews keeps the locally persisted review history in sync with the
// server. Local state is authoritative for the UI: submissions append locally
// first, server failures are swallowed, and merges are by string-compared id.
package reviews

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/client/state"
	"github.com/azadstore/storefront/internal/domain"
)

// API is the server surface the manager syncs against.
// *apiclient.Client satisfies it.
type API interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
	CreateReview(ctx context.Context, review domain.Review) (domain.Review, error)
	UpdateReview(ctx context.Context, id domain.ID, patch map[string]any) (domain.Review, error)
}

// Average is a per-product rating summary.
type Average struct {
	ProductID domain.ID
	Mean      float64 // rounded to one decimal
	Stars     string  // length = mean rounded to nearest integer
	Count     int
}

// Manager owns the local review history.
type Manager struct {
	store  *state.Store
	api    API
	clock  func() time.Time
	logger *zap.Logger
}

// NewManager constructs the review manager. The API may be nil for a purely
// offline session.
func NewManager(store *state.Store, api API, clock func() time.Time, logger *zap.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("reviews: state store is required")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, api: api, clock: clock, logger: logger}, nil
}

// Local returns the local review history.
func (m *Manager) Local() []domain.Review {
	var reviews []domain.Review
	m.store.Get(state.KeyReviews, &reviews)
	return reviews
}

// Submit appends the review locally with a time-based id, then POSTs it. When
// the server answers with its own representation, the local entry is replaced
// under the original id: an id migration, never a duplicate. A failed POST
// leaves the optimistic entry standing.
func (m *Manager) Submit(ctx context.Context, name string, rating int, text string, productID domain.ID) (domain.Review, error) {
	now := m.clock().UTC()
	review := domain.Review{
		ID:        domain.ID(strconv.FormatInt(now.UnixMilli(), 10)),
		ProductID: productID,
		Name:      name,
		Rating:    rating,
		Text:      text,
		Date:      now,
		Verified:  false,
	}

	local := append(m.Local(), review)
	if err := m.save(local); err != nil {
		return domain.Review{}, err
	}

	if m.api == nil {
		return review, nil
	}
	created, err := m.api.CreateReview(ctx, review)
	if err != nil {
		m.logger.Warn("review sync failed, local copy stands", zap.Error(err))
		return review, nil
	}

	// Swap in the server representation under the optimistic id.
	for i := range local {
		if local[i].ID.String() == review.ID.String() {
			local[i] = created
			break
		}
	}
	if err := m.save(local); err != nil {
		m.logger.Warn("review id migration persist failed", zap.Error(err))
	}
	return created, nil
}

// Edit rewrites the local copy synchronously, then best-effort PUTs the new
// text. Server failure is not surfaced and not rolled back.
func (m *Manager) Edit(ctx context.Context, id domain.ID, newText string) bool {
	local := m.Local()
	found := false
	for i := range local {
		if local[i].ID.String() == id.String() {
			local[i].Text = newText
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if err := m.save(local); err != nil {
		m.logger.Warn("review edit persist failed", zap.Error(err))
		return false
	}

	if m.api != nil {
		if _, err := m.api.UpdateReview(ctx, id, map[string]any{"text": newText}); err != nil {
			m.logger.Warn("review edit sync failed", zap.Error(err))
		}
	}
	return true
}

// Delete removes the review locally. There is no server call; server copies
// linger until a refresh brings them back or an admin removes them.
func (m *Manager) Delete(id domain.ID) bool {
	local := m.Local()
	kept := local[:0]
	for _, review := range local {
		if review.ID.String() != id.String() {
			kept = append(kept, review)
		}
	}
	if len(kept) == len(local) {
		return false
	}
	if err := m.save(kept); err != nil {
		m.logger.Warn("review delete persist failed", zap.Error(err))
		return false
	}
	return true
}

// Refresh fetches the server list and unions in any local entries the server
// does not know, then persists the union as the new local history. A failed
// fetch leaves local state untouched.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.api == nil {
		return nil
	}
	serverList, err := m.api.ListReviews(ctx)
	if err != nil {
		m.logger.Warn("review refresh failed, keeping local list", zap.Error(err))
		return err
	}

	known := make(map[string]bool, len(serverList))
	for _, review := range serverList {
		known[review.ID.String()] = true
	}
	merged := serverList
	for _, review := range m.Local() {
		if !known[review.ID.String()] {
			merged = append(merged, review)
		}
	}
	return m.save(merged)
}

// Averages groups local reviews by product and computes each product's mean
// rating (one decimal) with a star string of length mean-rounded-to-integer.
// Reviews without a product id are excluded. The review store is only read.
func (m *Manager) Averages() map[domain.ID]Average {
	sums := map[domain.ID]int{}
	counts := map[domain.ID]int{}
	for _, review := range m.Local() {
		if review.ProductID.IsZero() {
			continue
		}
		sums[review.ProductID] += review.Rating
		counts[review.ProductID]++
	}

	averages := make(map[domain.ID]Average, len(counts))
	for productID, count := range counts {
		mean := math.Round(float64(sums[productID])/float64(count)*10) / 10
		averages[productID] = Average{
			ProductID: productID,
			Mean:      mean,
			Stars:     strings.Repeat("★", int(math.Round(mean))),
			Count:     count,
		}
	}
	return averages
}

func (m *Manager) save(reviews []domain.Review) error {
	if err := m.store.Put(state.KeyReviews, reviews); err != nil {
		return fmt.Errorf("reviews: persist history: %w", err)
	}
	return nil
}
