package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/storeerr"
)

const (
	entityBusiness = "business"
	entityReview   = "review"
)

// BusinessRepository stores businesses and their embedded reviews in a
// single collection. Every mutation targets one document, so each call is
// atomic on the server without client-side locking.
type BusinessRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
	log     *zerolog.Logger
}

// NewBusinessRepository wraps coll. A zero timeout leaves the caller's
// context deadline in charge.
func NewBusinessRepository(coll *mongo.Collection, timeout time.Duration, logger *zerolog.Logger) *BusinessRepository {
	return &BusinessRepository{
		coll:    coll,
		timeout: timeout,
		log:     logger,
	}
}

func (r *BusinessRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// FindPage returns up to limit businesses after skipping skip, in insertion order.
func (r *BusinessRepository) FindPage(ctx context.Context, skip, limit int64) ([]model.Business, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storeerr.Wrap(err, entityBusiness, "find page")
	}

	businesses := []model.Business{}
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, storeerr.Wrap(err, entityBusiness, "decode page")
	}

	return businesses, nil
}

// FindByID returns the business with id, or nil when there is none.
func (r *BusinessRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Business, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var business model.Business
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&business)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeerr.Wrap(err, entityBusiness, "find by id")
	}

	if business.Reviews == nil {
		business.Reviews = []model.Review{}
	}
	return &business, nil
}

// Insert stores b and returns the id assigned by the store.
func (r *BusinessRepository) Insert(ctx context.Context, b *model.Business) (primitive.ObjectID, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if b.Reviews == nil {
		b.Reviews = []model.Review{}
	}

	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, storeerr.Wrap(err, entityBusiness, "insert")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, storeerr.Wrap(errors.New("inserted id is not an ObjectID"), entityBusiness, "insert")
	}
	b.ID = id

	r.log.Debug().Str("business_id", id.Hex()).Msg("business inserted")
	return id, nil
}

// ReplaceScalars overwrites name, town and rating. Reviews are untouched.
// It reports whether a document matched id.
func (r *BusinessRepository) ReplaceScalars(ctx context.Context, id primitive.ObjectID, f model.BusinessFields) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: f.Name},
		{Key: "town", Value: f.Town},
		{Key: "rating", Value: f.Rating},
	}}}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, storeerr.Wrap(err, entityBusiness, "update")
	}
	return res.MatchedCount == 1, nil
}

// Delete removes the business together with its reviews.
func (r *BusinessRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, storeerr.Wrap(err, entityBusiness, "delete")
	}
	return res.DeletedCount == 1, nil
}

// PushReview appends review to the business's reviews. It reports whether
// the business exists.
func (r *BusinessRepository) PushReview(ctx context.Context, businessID primitive.ObjectID, review model.Review) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}}}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: businessID}}, update)
	if err != nil {
		return false, storeerr.Wrap(err, entityReview, "push")
	}
	return res.MatchedCount == 1, nil
}

// FindReviews returns the reviews of a business. The boolean is false when
// the business does not exist.
func (r *BusinessRepository) FindReviews(ctx context.Context, businessID primitive.ObjectID) ([]model.Review, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.D{{Key: "reviews", Value: 1}, {Key: "_id", Value: 0}})

	var business model.Business
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: businessID}}, opts).Decode(&business)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeerr.Wrap(err, entityReview, "find all")
	}

	if business.Reviews == nil {
		business.Reviews = []model.Review{}
	}
	return business.Reviews, true, nil
}

// reviewFilter matches the business that owns reviewID. Reviews are only
// addressable through their parent.
func reviewFilter(businessID, reviewID primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: businessID},
		{Key: "reviews._id", Value: reviewID},
	}
}

// FindReview returns one review of a business, or nil when the pair does not match.
func (r *BusinessRepository) FindReview(ctx context.Context, businessID, reviewID primitive.ObjectID) (*model.Review, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// The positional projection returns only the matched array element.
	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "reviews.$", Value: 1}})

	var business model.Business
	err := r.coll.FindOne(ctx, reviewFilter(businessID, reviewID), opts).Decode(&business)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeerr.Wrap(err, entityReview, "find one")
	}

	if len(business.Reviews) == 0 {
		return nil, nil
	}
	review := business.Reviews[0]
	return &review, nil
}

// ReplaceReviewScalars overwrites username, comment and stars of the
// matched review in place. It reports whether the review was found.
func (r *BusinessRepository) ReplaceReviewScalars(ctx context.Context, businessID, reviewID primitive.ObjectID, f model.ReviewFields) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "reviews.$.username", Value: f.Username},
		{Key: "reviews.$.comment", Value: f.Comment},
		{Key: "reviews.$.stars", Value: f.Stars},
	}}}

	res, err := r.coll.UpdateOne(ctx, reviewFilter(businessID, reviewID), update)
	if err != nil {
		return false, storeerr.Wrap(err, entityReview, "update")
	}
	return res.MatchedCount == 1, nil
}

// PullReview removes the review from the business. It reports whether
// anything was removed.
func (r *BusinessRepository) PullReview(ctx context.Context, businessID, reviewID primitive.ObjectID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$pull", Value: bson.D{
		{Key: "reviews", Value: bson.D{{Key: "_id", Value: reviewID}}},
	}}}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: businessID}}, update)
	if err != nil {
		return false, storeerr.Wrap(err, entityReview, "pull")
	}
	return res.ModifiedCount == 1, nil
}
