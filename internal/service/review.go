package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/bizreviews/internal/errs"
	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/validation"
)

// ReviewService implements the operations on reviews embedded in a business.
// Reviews are addressed by the (business id, review id) pair.
type ReviewService struct {
	store BusinessStore
}

// NewReviewService builds the service over store.
func NewReviewService(store BusinessStore) *ReviewService {
	return &ReviewService{store: store}
}

func parseReviewKey(businessID, reviewID string) (primitive.ObjectID, primitive.ObjectID, error) {
	bid, ok := validation.ParseObjectID(businessID)
	if !ok {
		return bid, primitive.NilObjectID, errs.InvalidBusinessID()
	}
	rid, ok := validation.ParseObjectID(reviewID)
	if !ok {
		return bid, rid, errs.InvalidReviewID()
	}
	return bid, rid, nil
}

// Add appends a new review to a business and returns the generated review id.
func (s *ReviewService) Add(ctx context.Context, businessID string, f model.ReviewFields) (primitive.ObjectID, error) {
	bid, ok := validation.ParseObjectID(businessID)
	if !ok {
		return primitive.NilObjectID, errs.InvalidBusinessID()
	}

	review := model.NewReview(f)

	matched, err := s.store.PushReview(ctx, bid, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !matched {
		return primitive.NilObjectID, errs.BusinessNotFound()
	}

	zerolog.Ctx(ctx).Info().
		Str("business_id", bid.Hex()).
		Str("review_id", review.ID.Hex()).
		Msg("review added")

	return review.ID, nil
}

// List returns the reviews of a business in the order they were added.
func (s *ReviewService) List(ctx context.Context, businessID string) ([]model.ReviewResponse, error) {
	bid, ok := validation.ParseObjectID(businessID)
	if !ok {
		return nil, errs.InvalidBusinessID()
	}

	reviews, found, err := s.store.FindReviews(ctx, bid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.BusinessNotFound()
	}

	return model.ToReviewResponses(reviews), nil
}

// Get returns one review of a business.
func (s *ReviewService) Get(ctx context.Context, businessID, reviewID string) (*model.ReviewResponse, error) {
	bid, rid, err := parseReviewKey(businessID, reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.store.FindReview(ctx, bid, rid)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errs.ReviewNotFound()
	}

	resp := model.ToReviewResponse(*review)
	return &resp, nil
}

// Edit replaces the scalar fields of a review. A key that matches nothing
// is not an error; it is logged and the caller still receives the link.
func (s *ReviewService) Edit(ctx context.Context, businessID, reviewID string, f model.ReviewFields) error {
	bid, rid, err := parseReviewKey(businessID, reviewID)
	if err != nil {
		return err
	}

	matched, err := s.store.ReplaceReviewScalars(ctx, bid, rid, f)
	if err != nil {
		return err
	}
	if !matched {
		zerolog.Ctx(ctx).Warn().
			Str("business_id", bid.Hex()).
			Str("review_id", rid.Hex()).
			Msg("review edit matched no document")
	}

	return nil
}

// Delete removes a review from its business. Removing a review that does
// not exist succeeds.
func (s *ReviewService) Delete(ctx context.Context, businessID, reviewID string) error {
	bid, rid, err := parseReviewKey(businessID, reviewID)
	if err != nil {
		return err
	}

	removed, err := s.store.PullReview(ctx, bid, rid)
	if err != nil {
		return err
	}
	if !removed {
		zerolog.Ctx(ctx).Warn().
			Str("business_id", bid.Hex()).
			Str("review_id", rid.Hex()).
			Msg("review delete matched no document")
	}

	return nil
}
