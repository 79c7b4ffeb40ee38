package services

import (
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Activity log first: the customer service audits through it.
	container.ActivityLog = NewActivityLogService(repos.ActivityLogRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.ActivityLog)
	container.Reporting = NewReportingService(repos.CustomerRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.CustomerSvcFacade    = (*customerService)(nil)
	_ portssvc.ReportingSvcFacade   = (*reportingService)(nil)
	_ portssvc.ActivityLogSvcFacade = (*activityLogService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
)
