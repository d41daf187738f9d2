package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
)

// AnalyticsService produces the admin overview.
type AnalyticsService interface {
	Overview(ctx context.Context) (*analytics.Summary, error)
}
