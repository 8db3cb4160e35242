package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	CompanyAuthorizer portssvc.CompanyAuthorizerSvc
	Clock             func() time.Time
}

// ServiceOption is a functional option for configuring the shared service fields
type ServiceOption func(*BaseService)

// WithCompanyAuthorizer adds the company authorizer dependency
func WithCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Today returns the current date at midnight UTC.
func (s *BaseService) Today() time.Time {
	now := s.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a recoverable problem
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeCompany checks that the user owns the company
func (s *BaseService) AuthorizeCompany(ctx context.Context, userID, companyID string) error {
	if s.CompanyAuthorizer != nil {
		return s.CompanyAuthorizer.AuthorizeCompanyAccess(ctx, userID, companyID)
	}
	s.LogDebug(ctx, "No company authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("company_id", companyID))
	return nil
}

// newAuditFields stamps a freshly created entity.
func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
