package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/bizreviews/internal/errs"
	"github.com/deppfellow/bizreviews/internal/lib/pagination"
	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/validation"
)

// BusinessService implements the business resource operations.
type BusinessService struct {
	store    BusinessStore
	pageOpts pagination.Options
}

// NewBusinessService builds the service over store with the given page size bounds.
func NewBusinessService(store BusinessStore, pageOpts pagination.Options) *BusinessService {
	return &BusinessService{store: store, pageOpts: pageOpts}
}

// List returns one page of businesses. An out of range page is an empty list.
func (s *BusinessService) List(ctx context.Context, pn, ps string) ([]model.BusinessResponse, error) {
	window, err := pagination.Parse(pn, ps, s.pageOpts)
	if err != nil {
		return nil, paginationError(err)
	}

	businesses, err := s.store.FindPage(ctx, window.Skip, window.Limit)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("page", window.Page).
		Int("page_size", window.Size).
		Int("count", len(businesses)).
		Msg("listed businesses")

	return model.ToBusinessResponses(businesses), nil
}

// Get returns a single business.
func (s *BusinessService) Get(ctx context.Context, id string) (*model.BusinessResponse, error) {
	oid, ok := validation.ParseObjectID(id)
	if !ok {
		return nil, errs.InvalidBusinessID()
	}

	business, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, errs.BusinessNotFound()
	}

	resp := model.ToBusinessResponse(business)
	return &resp, nil
}

// Create inserts a business with no reviews and returns its id.
func (s *BusinessService) Create(ctx context.Context, f model.BusinessFields) (primitive.ObjectID, error) {
	id, err := s.store.Insert(ctx, model.NewBusiness(f))
	if err != nil {
		return primitive.NilObjectID, err
	}

	zerolog.Ctx(ctx).Info().Str("business_id", id.Hex()).Msg("business created")
	return id, nil
}

// Update replaces the scalar fields of a business.
func (s *BusinessService) Update(ctx context.Context, id string, f model.BusinessFields) (primitive.ObjectID, error) {
	oid, ok := validation.ParseObjectID(id)
	if !ok {
		return primitive.NilObjectID, errs.InvalidBusinessID()
	}

	matched, err := s.store.ReplaceScalars(ctx, oid, f)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !matched {
		return primitive.NilObjectID, errs.BusinessNotFound()
	}

	return oid, nil
}

// Delete removes a business and, with it, its reviews.
func (s *BusinessService) Delete(ctx context.Context, id string) error {
	oid, ok := validation.ParseObjectID(id)
	if !ok {
		return errs.InvalidBusinessID()
	}

	deleted, err := s.store.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.BusinessNotFound()
	}

	zerolog.Ctx(ctx).Info().Str("business_id", oid.Hex()).Msg("business deleted")
	return nil
}

func paginationError(err error) error {
	var perr *pagination.Error
	if errors.As(err, &perr) {
		return errs.NewBadRequestError("Invalid pagination parameters", true, nil, []errs.FieldError{
			{Field: perr.Param, Error: "must be a positive integer"},
		})
	}
	return errs.ValidationError(err)
}
