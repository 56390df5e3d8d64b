/**
 * @description
 * This file defines the core domain models for the subscription-service.
 * It includes the Subscription record served to the frontend, the paginated
 * result wrapper, and the tier/status/feature vocabularies.
 */
package domain

import "time"

// Subscription tiers.
const (
	TierBasic   = "basic"
	TierPro     = "pro"
	TierPremium = "premium"
)

// Subscription statuses.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusSuspended = "suspended"
)

// Capability tags carried in Subscription.Features.
const (
	FeatureCore      = "core"
	FeatureAnalytics = "analytics"
)

// Subscription represents one licensed customer subscription as the frontend sees it.
type Subscription struct {
	ID               string    `json:"id"`
	CustomerName     string    `json:"customerName"`
	CustomerID       string    `json:"customerId"`
	LicenseKey       string    `json:"licenseKey"`
	Tier             string    `json:"tier"`   // 'basic', 'pro', 'premium'
	Status           string    `json:"status"` // 'active', 'expired', 'suspended'
	Features         []string  `json:"features"`
	MaxDevices       int       `json:"maxDevices"`
	DevicesConnected int       `json:"devicesConnected"`
	StartsAt         time.Time `json:"startsAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
	GracePeriodDays  int       `json:"gracePeriodDays"`
	LastActivity     time.Time `json:"lastActivity"`
	LastSyncAt       time.Time `json:"lastSyncAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Notes            string    `json:"notes"`
}

// ListSubscriptionsParams carries the query for a paginated subscription listing.
// Empty Status and Search disable the respective filter.
type ListSubscriptionsParams struct {
	Page     int    `json:"page" validate:"gte=1"`
	PageSize int    `json:"page_size" validate:"gte=1,lte=100"`
	Status   string `json:"status"`
	Search   string `json:"search"`
}

// Page is one page of a filtered collection plus the metadata the frontend's
// PaginatedResponse<T> expects.
type Page[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
