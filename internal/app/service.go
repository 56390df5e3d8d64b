/**
 * @description
 * This file contains the core business logic for the subscription service.
 * The Service layer pulls the candidate set from the repository and applies
 * filtering and pagination, and assembles the dashboard analytics views.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowlytix/subscription-service/internal/domain"
)

// Pagination defaults and bounds for subscription listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Repository defines the data source operations that the service needs.
type Repository interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// Info identifies the running deployment in analytics payloads.
type Info struct {
	Version     string
	Environment string
}

// Service provides the business logic for subscription queries and analytics.
type Service struct {
	repo   Repository
	info   Info
	logger *slog.Logger
}

// NewService creates a new subscription service.
func NewService(repo Repository, info Info, logger *slog.Logger) Service {
	return Service{repo: repo, info: info, logger: logger}
}

// ListSubscriptions returns one page of the candidate set after applying the
// status and search filters. Results are ordered by ascending id.
func (s Service) ListSubscriptions(ctx context.Context, params domain.ListSubscriptionsParams) (*domain.Page[domain.Subscription], error) {
	if params.Page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidInput, params.Page)
	}
	if params.PageSize < 1 || params.PageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page_size must be between 1 and %d, got %d", domain.ErrInvalidInput, MaxPageSize, params.PageSize)
	}

	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load subscriptions", "error", err)
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}

	filtered := FilterSubscriptions(subs, params.Status, params.Search)
	page := Paginate(filtered, params.Page, params.PageSize)

	s.logger.DebugContext(ctx, "listed subscriptions",
		"page", page.Page,
		"page_size", page.PageSize,
		"status", params.Status,
		"search", params.Search,
		"total_count", page.TotalCount,
		"returned", len(page.Data),
	)
	return &page, nil
}

// DashboardAnalytics returns the dashboard overview figures.
func (s Service) DashboardAnalytics() domain.DashboardAnalytics {
	return domain.DashboardAnalytics{
		TotalSubscriptions:             156,
		ActiveSubscriptions:            142,
		InactiveSubscriptions:          14,
		MonthlyRevenue:                 23450.00,
		YearlyRevenue:                  281400.00,
		ChurnRate:                      0.05,
		GrowthRate:                     0.15,
		AvgSubscriptionValue:           165.14,
		NewSubscriptionsThisMonth:      12,
		CanceledSubscriptionsThisMonth: 3,
		UpcomingRenewals:               28,
		OverduePayments:                5,
		ConversionRate:                 0.18,
		CustomerSatisfaction:           4.2,
		SupportTickets:                 23,
		FeatureAdoptionRate:            0.72,
	}
}

// SystemHealth returns the infrastructure summary for the dashboard.
func (s Service) SystemHealth() domain.SystemHealth {
	return domain.SystemHealth{
		ServerStatus:         "healthy",
		DatabaseStatus:       "healthy",
		CacheStatus:          "healthy",
		APIResponseTime:      125.5,
		DatabaseResponseTime: 23.2,
		CacheHitRate:         0.94,
		ErrorRate:            0.002,
		Uptime:               "99.98%",
		MemoryUsage:          68.5,
		CPUUsage:             34.2,
		DiskUsage:            45.8,
		ActiveConnections:    127,
		RequestsPerMinute:    1250,
		LastBackup:           "2024-01-15T03:00:00Z",
		SystemVersion:        s.info.Version,
		Environment:          s.info.Environment,
	}
}
