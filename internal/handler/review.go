package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/server"
	"github.com/deppfellow/bizreviews/internal/service"
)

// ReviewHandler serves the reviews nested under a business.
type ReviewHandler struct {
	Handler
	reviews *service.ReviewService
}

// NewReviewHandler constructs a ReviewHandler backed by reviews.
func NewReviewHandler(s *server.Server, reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		Handler: NewHandler(s),
		reviews: reviews,
	}
}

func (h *ReviewHandler) reviewURL(c echo.Context, businessID, reviewID string) string {
	return h.resourceURL(c, "businesses", businessID, "reviews", reviewID)
}

func (h *ReviewHandler) AddReview(c echo.Context, req *ReviewForm) (*model.URLResponse, error) {
	rid, err := h.reviews.Add(c.Request().Context(), req.BusinessID, req.Fields())
	if err != nil {
		return nil, err
	}
	return &model.URLResponse{URL: h.reviewURL(c, req.BusinessID, rid.Hex())}, nil
}

func (h *ReviewHandler) ListReviews(c echo.Context, req *BusinessIDRequest) ([]model.ReviewResponse, error) {
	return h.reviews.List(c.Request().Context(), req.ID)
}

func (h *ReviewHandler) GetReview(c echo.Context, req *ReviewIDRequest) (*model.ReviewResponse, error) {
	return h.reviews.Get(c.Request().Context(), req.BusinessID, req.ReviewID)
}

// EditReview answers with the review link even when nothing matched.
func (h *ReviewHandler) EditReview(c echo.Context, req *ReviewForm) (*model.URLResponse, error) {
	if err := h.reviews.Edit(c.Request().Context(), req.BusinessID, req.ReviewID, req.Fields()); err != nil {
		return nil, err
	}
	return &model.URLResponse{URL: h.reviewURL(c, req.BusinessID, req.ReviewID)}, nil
}

func (h *ReviewHandler) DeleteReview(c echo.Context, req *ReviewIDRequest) error {
	return h.reviews.Delete(c.Request().Context(), req.BusinessID, req.ReviewID)
}
