package activitylogs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEntries bounds the in-memory trail; the oldest entries go first.
const DefaultMaxEntries = 10000

type Entry struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"userId,omitempty"`
	Email      string    `json:"email,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType,omitempty"`
	EntityID   string    `json:"entityId,omitempty"`
	Status     int       `json:"status"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateActivityLogParams struct {
	UserID     string
	Email      string
	Action     string
	EntityType string
	EntityID   string
	Status     int
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

// ActivityLog records who changed what through the portal.
type ActivityLog struct {
	mu         sync.RWMutex
	entries    []Entry
	maxEntries int
}

func NewActivityLog(maxEntries int) *ActivityLog {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ActivityLog{
		maxEntries: maxEntries,
	}
}

func (a *ActivityLog) Create(_ context.Context, params CreateActivityLogParams) Entry {
	if params.CreatedAt.IsZero() {
		params.CreatedAt = time.Now()
	}

	entry := Entry{
		ID:         uuid.New(),
		UserID:     params.UserID,
		Email:      params.Email,
		Action:     params.Action,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		Status:     params.Status,
		IPAddress:  params.IPAddress,
		UserAgent:  params.UserAgent,
		CreatedAt:  params.CreatedAt.UTC(),
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, entry)
	// over capacity, drop an extra tenth so the shift happens once per batch
	if over := len(a.entries) - a.maxEntries; over > 0 {
		drop := over + a.maxEntries/10
		n := copy(a.entries, a.entries[drop:])
		clear(a.entries[n:])
		a.entries = a.entries[:n]
	}

	return entry
}

// GetByUser returns the user's entries, newest first.
func (a *ActivityLog) GetByUser(_ context.Context, userID string, limit, offset int) []Entry {
	return a.page(func(e Entry) bool { return e.UserID == userID }, limit, offset)
}

// GetRecent returns every entry, newest first.
func (a *ActivityLog) GetRecent(_ context.Context, limit, offset int) []Entry {
	return a.page(func(Entry) bool { return true }, limit, offset)
}

// DeleteBefore drops entries created before threshold and reports how many
// were removed.
func (a *ActivityLog) DeleteBefore(_ context.Context, threshold time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.entries[:0]
	for _, e := range a.entries {
		if !e.CreatedAt.Before(threshold) {
			kept = append(kept, e)
		}
	}
	removed := len(a.entries) - len(kept)
	a.entries = kept
	return removed
}

func (a *ActivityLog) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}

func (a *ActivityLog) page(match func(Entry) bool, limit, offset int) []Entry {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Entry, 0, limit)
	skipped := 0
	for i := len(a.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if !match(a.entries[i]) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, a.entries[i])
	}
	return out
}
