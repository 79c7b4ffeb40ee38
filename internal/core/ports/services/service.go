package services

import (
	"time"

	"github.com/zaminwale/crm_backend/internal/core/domain"
)

// TokenSvcFacade issues bearer tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateToken returns a signed JWT for the user and its expiry time.
	GenerateToken(user *domain.User) (string, time.Time, error)
}

// ServiceContainer bundles the application services handed to the HTTP
// layer at startup.
type ServiceContainer struct {
	Customer    CustomerSvcFacade
	Reporting   ReportingSvcFacade
	ActivityLog ActivityLogSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
}
