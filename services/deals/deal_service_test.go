package deals

import (
	"bytes"
	"testing"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *DealService {
	s := NewDealService(logging.NewLoggerWithOutput(&bytes.Buffer{}))
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func TestCreateDeal(t *testing.T) {
	tests := []struct {
		name    string
		input   DealInput
		wantErr bool
	}{
		{"Valid deal defaults to prospect", DealInput{Name: "Renewal", Company: "Contoso", Amount: decimal.RequireFromString("1200.50")}, false},
		{"Missing name", DealInput{Company: "Contoso"}, true},
		{"Unknown stage", DealInput{Name: "Renewal", Company: "Contoso", Stage: "maybe"}, true},
		{"Negative amount", DealInput{Name: "Renewal", Company: "Contoso", Amount: decimal.NewFromInt(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal, err := newTestService().Create("owner-1", tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StageProspect, deal.Stage)
			assert.Equal(t, "owner-1", deal.OwnerID)
			assert.True(t, deal.Amount.Equal(decimal.RequireFromString("1200.5")))
		})
	}
}

func TestCreateDealValidationErrors(t *testing.T) {
	_, err := newTestService().Create("owner-1", DealInput{Name: "x"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestListDeals(t *testing.T) {
	s := newTestService()
	first, err := s.Create("owner-1", DealInput{Name: "First", Company: "A"})
	require.NoError(t, err)
	second, err := s.Create("owner-2", DealInput{Name: "Second", Company: "B", Stage: StageWon})
	require.NoError(t, err)
	third, err := s.Create("owner-1", DealInput{Name: "Third", Company: "C", Stage: StageWon})
	require.NoError(t, err)

	all := s.List(ListFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	mine := s.List(ListFilter{OwnerID: "owner-1"})
	assert.Len(t, mine, 2)

	won := s.List(ListFilter{OwnerID: "owner-1", Stage: StageWon})
	require.Len(t, won, 1)
	assert.Equal(t, third.ID, won[0].ID)
}

func TestUpdateAndDeleteDeal(t *testing.T) {
	s := newTestService()
	deal, err := s.Create("owner-1", DealInput{Name: "Renewal", Company: "Contoso"})
	require.NoError(t, err)

	stage := StageQualified
	amount := decimal.NewFromInt(5000)
	updated, err := s.Update(deal.ID, DealUpdate{Stage: &stage, Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, StageQualified, updated.Stage)
	assert.True(t, updated.Amount.Equal(amount))
	assert.True(t, updated.UpdatedAt.After(deal.UpdatedAt))

	bad := "lost-forever"
	_, err = s.Update(deal.ID, DealUpdate{Stage: &bad})
	assert.Error(t, err)

	_, err = s.Update(uuid.New(), DealUpdate{Stage: &stage})
	assert.ErrorIs(t, err, ErrDealNotFound)

	require.NoError(t, s.Delete(deal.ID))
	_, err = s.Get(deal.ID)
	assert.ErrorIs(t, err, ErrDealNotFound)
	assert.ErrorIs(t, s.Delete(deal.ID), ErrDealNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	s := newTestService()
	deal, err := s.Create("owner-1", DealInput{Name: "Renewal", Company: "Contoso"})
	require.NoError(t, err)

	got, err := s.Get(deal.ID)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := s.Get(deal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renewal", again.Name)
}

func TestUpdateDealRejectsBlankNames(t *testing.T) {
	blank := "   "
	valid := "  Fabrikam  "

	tests := []struct {
		name   string
		update DealUpdate
	}{
		{"Blank name", DealUpdate{Name: &blank}},
		{"Blank company", DealUpdate{Company: &blank}},
		{"Blank name and company", DealUpdate{Name: &blank, Company: &blank}},
		{"Blank name with valid company", DealUpdate{Name: &blank, Company: &valid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService()
			deal, err := s.Create("owner-1", DealInput{Name: "Renewal", Company: "Contoso"})
			require.NoError(t, err)

			_, err = s.Update(deal.ID, tt.update)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)

			stored, err := s.Get(deal.ID)
			require.NoError(t, err)
			assert.Equal(t, "Renewal", stored.Name)
			assert.Equal(t, "Contoso", stored.Company)
		})
	}
}

func TestUpdateDealTrimsNames(t *testing.T) {
	s := newTestService()
	deal, err := s.Create("owner-1", DealInput{Name: "Renewal", Company: "Contoso"})
	require.NoError(t, err)

	name := "  Expansion "
	company := " Fabrikam  "
	updated, err := s.Update(deal.ID, DealUpdate{Name: &name, Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Expansion", updated.Name)
	assert.Equal(t, "Fabrikam", updated.Company)
	assert.Equal(t, "  Expansion ", name)
}
