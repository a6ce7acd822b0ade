package handler

import (
	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/validation"
)

// ListBusinessesRequest carries the raw paging parameters. They are parsed
// by the service so that each gets its own error.
type ListBusinessesRequest struct {
	PageNum  string `query:"pn"`
	PageSize string `query:"ps"`
}

func (r *ListBusinessesRequest) Validate() error {
	return nil
}

// BusinessIDRequest addresses one business. The id format is checked by the
// service.
type BusinessIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *BusinessIDRequest) Validate() error {
	return nil
}

// BusinessForm is the body of create and update calls.
type BusinessForm struct {
	ID     string `param:"id" json:"-"`
	Name   string `form:"name" json:"name" validate:"required"`
	Town   string `form:"town" json:"town" validate:"required"`
	Rating int    `form:"rating" json:"rating" validate:"required,min=1,max=5"`
}

func (r *BusinessForm) Validate() error {
	return validation.Struct(r)
}

func (r *BusinessForm) Fields() model.BusinessFields {
	return model.BusinessFields{Name: r.Name, Town: r.Town, Rating: r.Rating}
}

// ReviewIDRequest addresses one review inside a business.
type ReviewIDRequest struct {
	BusinessID string `param:"id" json:"-"`
	ReviewID   string `param:"rid" json:"-"`
}

func (r *ReviewIDRequest) Validate() error {
	return nil
}

// ReviewForm is the body of add and edit calls. ReviewID is empty on add.
type ReviewForm struct {
	BusinessID string `param:"id" json:"-"`
	ReviewID   string `param:"rid" json:"-"`
	Username   string `form:"username" json:"username" validate:"required"`
	Comment    string `form:"comment" json:"comment" validate:"required"`
	Stars      int    `form:"stars" json:"stars" validate:"required,min=1,max=5"`
}

func (r *ReviewForm) Validate() error {
	return validation.Struct(r)
}

func (r *ReviewForm) Fields() model.ReviewFields {
	return model.ReviewFields{Username: r.Username, Comment: r.Comment, Stars: r.Stars}
}
