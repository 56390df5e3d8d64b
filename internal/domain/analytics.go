/**
 * @description
 * This file defines the analytics payloads served by the dashboard routes.
 */
package domain

// DashboardAnalytics is the overview block rendered on the admin dashboard.
type DashboardAnalytics struct {
	TotalSubscriptions             int     `json:"total_subscriptions"`
	ActiveSubscriptions            int     `json:"active_subscriptions"`
	InactiveSubscriptions          int     `json:"inactive_subscriptions"`
	MonthlyRevenue                 float64 `json:"monthly_revenue"`
	YearlyRevenue                  float64 `json:"yearly_revenue"`
	ChurnRate                      float64 `json:"churn_rate"`
	GrowthRate                     float64 `json:"growth_rate"`
	AvgSubscriptionValue           float64 `json:"avg_subscription_value"`
	NewSubscriptionsThisMonth      int     `json:"new_subscriptions_this_month"`
	CanceledSubscriptionsThisMonth int     `json:"canceled_subscriptions_this_month"`
	UpcomingRenewals               int     `json:"upcoming_renewals"`
	OverduePayments                int     `json:"overdue_payments"`
	ConversionRate                 float64 `json:"conversion_rate"`
	CustomerSatisfaction           float64 `json:"customer_satisfaction"`
	SupportTickets                 int     `json:"support_tickets"`
	FeatureAdoptionRate            float64 `json:"feature_adoption_rate"`
}

// SystemHealth is the infrastructure summary rendered on the admin dashboard.
type SystemHealth struct {
	ServerStatus         string  `json:"server_status"`
	DatabaseStatus       string  `json:"database_status"`
	CacheStatus          string  `json:"cache_status"`
	APIResponseTime      float64 `json:"api_response_time"`
	DatabaseResponseTime float64 `json:"database_response_time"`
	CacheHitRate         float64 `json:"cache_hit_rate"`
	ErrorRate            float64 `json:"error_rate"`
	Uptime               string  `json:"uptime"`
	MemoryUsage          float64 `json:"memory_usage"`
	CPUUsage             float64 `json:"cpu_usage"`
	DiskUsage            float64 `json:"disk_usage"`
	ActiveConnections    int     `json:"active_connections"`
	RequestsPerMinute    int     `json:"requests_per_minute"`
	LastBackup           string  `json:"last_backup"`
	SystemVersion        string  `json:"system_version"`
	Environment          string  `json:"environment"`
}
