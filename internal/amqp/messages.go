package amqp

import (
	"encoding/json"
	"time"
)

// BudgetRecomputeMessage asks the worker to refresh the cached spent
// amount of the budget matching (owner, category, month). It carries the
// tuple rather than a budget ID because the triggering transaction does
// not know whether a budget exists for it.
type BudgetRecomputeMessage struct {
	OwnerID   string    `json:"ownerId"`
	Category  string    `json:"category"`
	Month     string    `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBudgetRecomputeMessage(ownerID, category, month string) *BudgetRecomputeMessage {
	return &BudgetRecomputeMessage{
		OwnerID:   ownerID,
		Category:  category,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *BudgetRecomputeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetRecomputeMessageFromJSON(data []byte) (*BudgetRecomputeMessage, error) {
	var msg BudgetRecomputeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
