package dto

import (
	"time"

	"estoque/internal/domain/ledger"
)

// StockOperationRequest carries the quantity and optional reason for one
// stock mutation. For add/remove the quantity is the delta; for adjust it is
// the absolute target level.
type StockOperationRequest struct {
	Quantity int    `json:"quantity" binding:"min=0"`
	Reason   string `json:"reason"`
}

// MovementResponse contains one ledger entry.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	Type          string    `json:"movementType"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reason        string    `json:"reason,omitempty"`
	CreatedBy     *string   `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromMovement creates MovementResponse from a ledger entry.
func FromMovement(m *ledger.Movement) MovementResponse {
	resp := MovementResponse{
		ID:            m.ID.String(),
		ProductID:     m.ProductID.String(),
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
	if m.CreatedBy != nil {
		s := m.CreatedBy.String()
		resp.CreatedBy = &s
	}
	return resp
}

// MovementListResponse wraps a product's movement history.
type MovementListResponse struct {
	Items      []MovementResponse `json:"items"`
	TotalCount int                `json:"totalCount"`
}
