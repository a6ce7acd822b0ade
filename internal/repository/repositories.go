package repository

import (
	"github.com/deppfellow/bizreviews/internal/server"
)

// Repositories groups every repository built from the shared server resources.
type Repositories struct {
	Businesses *BusinessRepository
}

// NewRepositories builds the repositories on top of the server's database client.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Businesses: NewBusinessRepository(
			s.DB.Businesses(),
			s.Config.Database.OperationTimeout,
			s.Logger,
		),
	}
}
