/**
 * @description
 * This file implements the data source for the subscription listing.
 * Records are generated in memory from fixed fixture tables keyed by the
 * numeric id, so the same id always yields the same record.
 */
package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/flowlytix/subscription-service/internal/domain"
)

// tierCycle is indexed by id mod 6.
var tierCycle = [6]string{
	domain.TierPremium,
	domain.TierPro,
	domain.TierBasic,
	domain.TierPremium,
	domain.TierBasic,
	domain.TierPro,
}

// statusCycle is indexed by id mod 12.
var statusCycle = [12]string{
	domain.StatusExpired,
	domain.StatusActive,
	domain.StatusActive,
	domain.StatusActive,
	domain.StatusSuspended,
	domain.StatusActive,
	domain.StatusActive,
	domain.StatusActive,
	domain.StatusSuspended,
	domain.StatusActive,
	domain.StatusActive,
	domain.StatusActive,
}

const gracePeriodDays = 30

// SubscriptionRepository serves a fixed, generated candidate set of subscriptions.
type SubscriptionRepository struct {
	size int
}

// NewSubscriptionRepository creates a repository that generates size records with ids 1..size.
func NewSubscriptionRepository(size int) *SubscriptionRepository {
	if size < 0 {
		size = 0
	}
	return &SubscriptionRepository{size: size}
}

// ListSubscriptions returns the whole candidate set in ascending id order.
func (r *SubscriptionRepository) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subs := make([]domain.Subscription, 0, r.size)
	for i := 1; i <= r.size; i++ {
		subs = append(subs, GenerateSubscription(i))
	}
	return subs, nil
}

// GenerateSubscription derives the record for a numeric id.
func GenerateSubscription(i int) domain.Subscription {
	startDay := 15 + i%15
	activityDay := 20 + i%10
	startsAt := time.Date(2024, time.January, startDay, 10, 0, 0, 0, time.UTC)
	lastActivity := time.Date(2024, time.January, activityDay, 14, 30, 0, 0, time.UTC)

	features := []string{domain.FeatureCore}
	if i%2 == 0 {
		features = append(features, domain.FeatureAnalytics)
	}

	maxDevices := 3
	if i%3 == 0 {
		maxDevices = 5
	}

	return domain.Subscription{
		ID:               strconv.Itoa(i),
		CustomerName:     fmt.Sprintf("Customer %d", i),
		CustomerID:       fmt.Sprintf("cust_%d", i),
		LicenseKey:       fmt.Sprintf("FL-%04d-%04d-%04d", i, i*2, i*3),
		Tier:             tierCycle[i%len(tierCycle)],
		Status:           statusCycle[i%len(statusCycle)],
		Features:         features,
		MaxDevices:       maxDevices,
		DevicesConnected: i%5 + 1,
		StartsAt:         startsAt,
		ExpiresAt:        time.Date(2024, time.December, startDay, 10, 0, 0, 0, time.UTC),
		GracePeriodDays:  gracePeriodDays,
		LastActivity:     lastActivity,
		LastSyncAt:       lastActivity,
		CreatedAt:        startsAt,
		UpdatedAt:        lastActivity,
		Notes:            fmt.Sprintf("Test subscription %d", i),
	}
}
