// Package service contains the business rules of the API.
//
// It sits between handlers and the repository: it checks identifiers before
// they reach the store, computes pagination windows, turns store outcomes
// into not-found errors and shapes results for the wire.
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/bizreviews/internal/model"
)

// BusinessStore is the document store seen by the services.
// repository.BusinessRepository implements it.
type BusinessStore interface {
	FindPage(ctx context.Context, skip, limit int64) ([]model.Business, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Business, error)
	Insert(ctx context.Context, b *model.Business) (primitive.ObjectID, error)
	ReplaceScalars(ctx context.Context, id primitive.ObjectID, f model.BusinessFields) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	PushReview(ctx context.Context, businessID primitive.ObjectID, review model.Review) (bool, error)
	FindReviews(ctx context.Context, businessID primitive.ObjectID) ([]model.Review, bool, error)
	FindReview(ctx context.Context, businessID, reviewID primitive.ObjectID) (*model.Review, error)
	ReplaceReviewScalars(ctx context.Context, businessID, reviewID primitive.ObjectID, f model.ReviewFields) (bool, error)
	PullReview(ctx context.Context, businessID, reviewID primitive.ObjectID) (bool, error)
}
