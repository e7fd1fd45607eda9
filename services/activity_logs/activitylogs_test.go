package activitylogs

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecentIsNewestFirst(t *testing.T) {
	logs := NewActivityLog(0)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		logs.Create(ctx, CreateActivityLogParams{
			UserID:    fmt.Sprintf("user-%d", i%2),
			Action:    fmt.Sprintf("action-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	recent := logs.GetRecent(ctx, 2, 0)
	require.Len(t, recent, 2)
	assert.Equal(t, "action-4", recent[0].Action)
	assert.Equal(t, "action-3", recent[1].Action)

	page := logs.GetRecent(ctx, 2, 4)
	require.Len(t, page, 1)
	assert.Equal(t, "action-0", page[0].Action)

	mine := logs.GetByUser(ctx, "user-1", 10, 0)
	require.Len(t, mine, 2)
	assert.Equal(t, "action-3", mine[0].Action)
	assert.Equal(t, "action-1", mine[1].Action)
}

func TestCreateDropsOldestOverCapacity(t *testing.T) {
	logs := NewActivityLog(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		logs.Create(ctx, CreateActivityLogParams{Action: fmt.Sprintf("action-%d", i)})
	}

	assert.Equal(t, 3, logs.Count())
	recent := logs.GetRecent(ctx, 10, 0)
	require.Len(t, recent, 3)
	assert.Equal(t, "action-2", recent[2].Action)
}

func TestCreateTrimsInBatches(t *testing.T) {
	testCases := []struct {
		name       string
		maxEntries int
		writes     int
		wantCount  int
		wantOldest string
	}{
		{"under capacity", 20, 20, 20, "action-0"},
		{"first write over capacity drops a tenth", 20, 21, 18, "action-3"},
		{"writes after a trim fill the room", 20, 23, 20, "action-3"},
		{"second trim", 20, 24, 18, "action-6"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := NewActivityLog(tc.maxEntries)
			ctx := context.Background()

			for i := 0; i < tc.writes; i++ {
				logs.Create(ctx, CreateActivityLogParams{Action: fmt.Sprintf("action-%d", i)})
			}

			require.Equal(t, tc.wantCount, logs.Count())
			recent := logs.GetRecent(ctx, 100, 0)
			require.Len(t, recent, tc.wantCount)
			assert.Equal(t, fmt.Sprintf("action-%d", tc.writes-1), recent[0].Action)
			assert.Equal(t, tc.wantOldest, recent[len(recent)-1].Action)
		})
	}
}

func TestCleanupRemovesExpiredEntries(t *testing.T) {
	logs := NewActivityLog(0)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	logs.Create(ctx, CreateActivityLogParams{Action: "old", CreatedAt: now.Add(-48 * time.Hour)})
	logs.Create(ctx, CreateActivityLogParams{Action: "fresh", CreatedAt: now.Add(-time.Hour)})

	svc := NewActivityLogCleanupService(logs, logging.NewLoggerWithOutput(io.Discard), 24*time.Hour)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Cleanup(ctx))

	remaining := logs.GetRecent(ctx, 10, 0)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Action)
}
