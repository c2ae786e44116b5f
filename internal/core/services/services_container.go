package services

import (
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.TransactionRepo)
	container.User = NewUserService(repos.UserRepo)

	// Token service depends on the user service for refresh token lookups
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
)
