// Package model defines the documents stored in the businesses collection
// and their wire representations.
package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business is a document in the businesses collection. Reviews are embedded
// and have no lifecycle of their own.
type Business struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Town    string             `bson:"town"`
	Rating  int                `bson:"rating"`
	Reviews []Review           `bson:"reviews"`
}

// Review is embedded in Business.Reviews.
type Review struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Comment  string             `bson:"comment"`
	Stars    int                `bson:"stars"`
}

// BusinessFields are the replaceable scalar attributes of a Business.
type BusinessFields struct {
	Name   string
	Town   string
	Rating int
}

// ReviewFields are the replaceable scalar attributes of a Review.
type ReviewFields struct {
	Username string
	Comment  string
	Stars    int
}

// NewBusiness builds a business with an empty review list. The id is left
// zero for the store to assign.
func NewBusiness(f BusinessFields) *Business {
	return &Business{
		Name:    f.Name,
		Town:    f.Town,
		Rating:  f.Rating,
		Reviews: []Review{},
	}
}

// NewReview builds a review with a freshly generated id.
func NewReview(f ReviewFields) Review {
	return Review{
		ID:       primitive.NewObjectID(),
		Username: f.Username,
		Comment:  f.Comment,
		Stars:    f.Stars,
	}
}
