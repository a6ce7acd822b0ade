package service

import (
	"github.com/deppfellow/bizreviews/internal/lib/pagination"
	"github.com/deppfellow/bizreviews/internal/repository"
	"github.com/deppfellow/bizreviews/internal/server"
)

// Services groups the business services.
type Services struct {
	Businesses *BusinessService
	Reviews    *ReviewService
}

// NewServices wires the services to the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	pageOpts := pagination.Options{
		DefaultSize: s.Config.Pagination.DefaultPageSize,
		MaxSize:     s.Config.Pagination.MaxPageSize,
	}

	return &Services{
		Businesses: NewBusinessService(repos.Businesses, pageOpts),
		Reviews:    NewReviewService(repos.Businesses),
	}
}
