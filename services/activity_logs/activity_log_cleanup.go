package activitylogs

import (
	"context"
	"fmt"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
)

const DefaultRetention = 90 * 24 * time.Hour

type ActivityLogCleanupService struct {
	logs      *ActivityLog
	logger    *logging.Logger
	retention time.Duration
	now       func() time.Time
}

func NewActivityLogCleanupService(logs *ActivityLog, logger *logging.Logger, retention time.Duration) *ActivityLogCleanupService {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &ActivityLogCleanupService{
		logs:      logs,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

// Cleanup matches the scheduler's task signature.
func (s *ActivityLogCleanupService) Cleanup(ctx context.Context) error {
	threshold := s.now().Add(-s.retention)
	removed := s.logs.DeleteBefore(ctx, threshold)
	if removed > 0 {
		s.logger.Info(fmt.Sprintf("removed %d activity log entries older than %s", removed, threshold.Format(time.RFC3339)))
	}
	return nil
}
