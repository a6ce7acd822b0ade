package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/server"
	"github.com/deppfellow/bizreviews/internal/service"
)

// BusinessHandler serves the business resource.
type BusinessHandler struct {
	Handler
	businesses *service.BusinessService
}

// NewBusinessHandler constructs a BusinessHandler backed by businesses.
func NewBusinessHandler(s *server.Server, businesses *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		Handler:    NewHandler(s),
		businesses: businesses,
	}
}

func (h *BusinessHandler) ListBusinesses(c echo.Context, req *ListBusinessesRequest) ([]model.BusinessResponse, error) {
	return h.businesses.List(c.Request().Context(), req.PageNum, req.PageSize)
}

func (h *BusinessHandler) GetBusiness(c echo.Context, req *BusinessIDRequest) (*model.BusinessResponse, error) {
	return h.businesses.Get(c.Request().Context(), req.ID)
}

func (h *BusinessHandler) CreateBusiness(c echo.Context, req *BusinessForm) (*model.URLResponse, error) {
	id, err := h.businesses.Create(c.Request().Context(), req.Fields())
	if err != nil {
		return nil, err
	}
	return &model.URLResponse{URL: h.resourceURL(c, "businesses", id.Hex())}, nil
}

func (h *BusinessHandler) UpdateBusiness(c echo.Context, req *BusinessForm) (*model.URLResponse, error) {
	id, err := h.businesses.Update(c.Request().Context(), req.ID, req.Fields())
	if err != nil {
		return nil, err
	}
	return &model.URLResponse{URL: h.resourceURL(c, "businesses", id.Hex())}, nil
}

func (h *BusinessHandler) DeleteBusiness(c echo.Context, req *BusinessIDRequest) error {
	return h.businesses.Delete(c.Request().Context(), req.ID)
}
