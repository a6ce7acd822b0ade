// Package router builds the echo instance: middleware order, the global
// error handler and every route.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bizreviews/internal/handler"
	"github.com/deppfellow/bizreviews/internal/middleware"
	"github.com/deppfellow/bizreviews/internal/server"
)

// NewRouter returns the HTTP handler of the service.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Tracing runs before the context enhancer so request loggers carry
	// trace ids; the rate limiter runs after it so denials are logged with them.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group(handler.APIBasePath)
	registerBusinessRoutes(api, h)
	registerReviewRoutes(api, h)

	return router
}

func registerBusinessRoutes(api *echo.Group, h *handler.Handlers) {
	b := h.Businesses

	api.GET("/businesses", handler.Handle(b.Handler, b.ListBusinesses, http.StatusOK, &handler.ListBusinessesRequest{}))
	api.POST("/businesses", handler.Handle(b.Handler, b.CreateBusiness, http.StatusCreated, &handler.BusinessForm{}))
	api.GET("/businesses/:id", handler.Handle(b.Handler, b.GetBusiness, http.StatusOK, &handler.BusinessIDRequest{}))
	api.PUT("/businesses/:id", handler.Handle(b.Handler, b.UpdateBusiness, http.StatusOK, &handler.BusinessForm{}))
	api.DELETE("/businesses/:id", handler.HandleNoContent(b.Handler, b.DeleteBusiness, http.StatusNoContent, &handler.BusinessIDRequest{}))
}

func registerReviewRoutes(api *echo.Group, h *handler.Handlers) {
	r := h.Reviews

	api.GET("/businesses/:id/reviews", handler.Handle(r.Handler, r.ListReviews, http.StatusOK, &handler.BusinessIDRequest{}))
	api.POST("/businesses/:id/reviews", handler.Handle(r.Handler, r.AddReview, http.StatusCreated, &handler.ReviewForm{}))
	api.GET("/businesses/:id/reviews/:rid", handler.Handle(r.Handler, r.GetReview, http.StatusOK, &handler.ReviewIDRequest{}))
	api.PUT("/businesses/:id/reviews/:rid", handler.Handle(r.Handler, r.EditReview, http.StatusOK, &handler.ReviewForm{}))
	api.DELETE("/businesses/:id/reviews/:rid", handler.HandleNoContent(r.Handler, r.DeleteReview, http.StatusNoContent, &handler.ReviewIDRequest{}))
}
