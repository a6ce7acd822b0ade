package handler

import (
	"github.com/deppfellow/bizreviews/internal/server"
	"github.com/deppfellow/bizreviews/internal/service"
)

// Handlers groups every HTTP handler so routing receives a single value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Businesses *BusinessHandler
	Reviews    *ReviewHandler
}

// NewHandlers constructs every handler from the server and the services.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Businesses: NewBusinessHandler(s, services.Businesses),
		Reviews:    NewReviewHandler(s, services.Reviews),
	}
}
