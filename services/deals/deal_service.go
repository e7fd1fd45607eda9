package deals

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrDealNotFound  = fmt.Errorf("deal not found")
	ErrInvalidAmount = fmt.Errorf("amount must not be negative")
)

// DealService is the in-memory store behind the showcase CRUD screens.
type DealService struct {
	mu       sync.RWMutex
	deals    map[uuid.UUID]*Deal
	validate *validator.Validate
	logger   *logging.Logger
	now      func() time.Time
}

func NewDealService(logger *logging.Logger) *DealService {
	return &DealService{
		deals:    make(map[uuid.UUID]*Deal),
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

func (d *DealService) Create(ownerID string, input DealInput) (*Deal, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Company = strings.TrimSpace(input.Company)

	if err := d.validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if input.Stage == "" {
		input.Stage = StageProspect
	}

	now := d.now().UTC()
	deal := &Deal{
		ID:        uuid.New(),
		Name:      input.Name,
		Company:   input.Company,
		Amount:    input.Amount,
		Stage:     input.Stage,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	d.mu.Lock()
	d.deals[deal.ID] = deal
	d.mu.Unlock()

	d.logger.Info(fmt.Sprintf("deal %s created by %s", deal.ID, ownerID))

	copied := *deal
	return &copied, nil
}

func (d *DealService) Get(id uuid.UUID) (*Deal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	deal, ok := d.deals[id]
	if !ok {
		return nil, ErrDealNotFound
	}
	copied := *deal
	return &copied, nil
}

// List returns matching deals, newest first.
func (d *DealService) List(filter ListFilter) []Deal {
	d.mu.RLock()
	out := make([]Deal, 0, len(d.deals))
	for _, deal := range d.deals {
		if filter.OwnerID != "" && deal.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Stage != "" && deal.Stage != filter.Stage {
			continue
		}
		out = append(out, *deal)
	}
	d.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Update applies the non-nil fields. Names are trimmed before validation so
// a blank value is rejected rather than stored.
func (d *DealService) Update(id uuid.UUID, update DealUpdate) (*Deal, error) {
	update.Name = trimmed(update.Name)
	update.Company = trimmed(update.Company)

	if err := d.validate.Struct(update); err != nil {
		return nil, err
	}
	if update.Amount != nil && update.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	deal, ok := d.deals[id]
	if !ok {
		return nil, ErrDealNotFound
	}

	if update.Name != nil {
		deal.Name = *update.Name
	}
	if update.Company != nil {
		deal.Company = *update.Company
	}
	if update.Amount != nil {
		deal.Amount = *update.Amount
	}
	if update.Stage != nil {
		deal.Stage = *update.Stage
	}
	deal.UpdatedAt = d.now().UTC()

	copied := *deal
	return &copied, nil
}

func (d *DealService) Delete(id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.deals[id]; !ok {
		return ErrDealNotFound
	}
	delete(d.deals, id)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
