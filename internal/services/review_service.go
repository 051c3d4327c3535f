package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/repositories"
)

var (
	// ErrReviewInvalidInput indicates the submitted review failed validation.
	ErrReviewInvalidInput = errors.New("review service: invalid input")
	// ErrReviewNotFound indicates the referenced review does not exist.
	ErrReviewNotFound = errors.New("review service: review not found")
)

// anonymousReviewer is used when a submission carries no author name.
const anonymousReviewer = "Anonymous"

// ReviewServiceDeps bundles constructor inputs for the review service.
type ReviewServiceDeps struct {
	Reviews repositories.ReviewRepository
	Clock   func() time.Time
	IDGen   func() domain.ID
}

type reviewService struct {
	repo     repositories.ReviewRepository
	clock    func() time.Time
	idGen    func() domain.ID
	policy   *bluemonday.Policy
	validate *validator.Validate
}

// NewReviewService constructs the review service with the supplied dependencies.
func NewReviewService(deps ReviewServiceDeps) (ReviewService, error) {
	if deps.Reviews == nil {
		return nil, errors.New("review service: review repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGen
	if idGen == nil {
		idGen = func() domain.ID { return domain.ID(ulid.Make().String()) }
	}
	return &reviewService{
		repo:     deps.Reviews,
		clock:    func() time.Time { return clock().UTC() },
		idGen:    idGen,
		policy:   bluemonday.StrictPolicy(),
		validate: validator.New(),
	}, nil
}

func (s *reviewService) List(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx)
}

func (s *reviewService) Create(ctx context.Context, cmd CreateReviewCommand) (Review, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return Review{}, fmt.Errorf("%w: %v", ErrReviewInvalidInput, err)
	}

	name := strings.TrimSpace(s.policy.Sanitize(cmd.Name))
	if name == "" {
		name = anonymousReviewer
	}

	review := Review{
		ID:        cmd.ID,
		ProductID: cmd.ProductID,
		Name:      name,
		Rating:    cmd.Rating,
		Text:      strings.TrimSpace(s.policy.Sanitize(cmd.Text)),
		Date:      s.clock(),
		Verified:  cmd.Verified,
	}
	if review.ID.IsZero() {
		review.ID = s.idGen()
	}

	if err := s.repo.Append(ctx, review); err != nil {
		return Review{}, err
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, id domain.ID, patch map[string]any) (Review, error) {
	if id.IsZero() {
		return Review{}, fmt.Errorf("%w: review id is required", ErrReviewInvalidInput)
	}
	if len(patch) == 0 {
		return Review{}, fmt.Errorf("%w: empty patch", ErrReviewInvalidInput)
	}

	// User-supplied text fields are sanitised on the way in, same as create.
	for _, key := range []string{"name", "text"} {
		if raw, ok := patch[key].(string); ok {
			patch[key] = strings.TrimSpace(s.policy.Sanitize(raw))
		}
	}
	if raw, ok := patch["rating"]; ok {
		if rating, ok := asInt(raw); !ok || rating < 1 || rating > 5 {
			return Review{}, fmt.Errorf("%w: rating must be an integer in [1,5]", ErrReviewInvalidInput)
		}
	}

	review, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if repositories.IsNotFound(err) {
			return Review{}, fmt.Errorf("%w: %s", ErrReviewNotFound, id)
		}
		return Review{}, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id domain.ID) (int, error) {
	if id.IsZero() {
		return 0, fmt.Errorf("%w: review id is required", ErrReviewInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
