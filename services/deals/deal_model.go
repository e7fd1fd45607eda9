package deals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StageProspect  = "prospect"
	StageQualified = "qualified"
	StageWon       = "won"
	StageLost      = "lost"
)

type Deal struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Company   string          `json:"company"`
	Amount    decimal.Decimal `json:"amount"`
	Stage     string          `json:"stage"`
	OwnerID   string          `json:"ownerId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type DealInput struct {
	Name    string          `json:"name" validate:"required,min=2,max=120"`
	Company string          `json:"company" validate:"required,max=120"`
	Amount  decimal.Decimal `json:"amount"`
	Stage   string          `json:"stage" validate:"omitempty,oneof=prospect qualified won lost"`
}

type DealUpdate struct {
	Name    *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Company *string          `json:"company" validate:"omitempty,min=1,max=120"`
	Amount  *decimal.Decimal `json:"amount"`
	Stage   *string          `json:"stage" validate:"omitempty,oneof=prospect qualified won lost"`
}

type ListFilter struct {
	OwnerID string
	Stage   string
}
