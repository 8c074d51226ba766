package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AllocationsUpdatedEvent struct {
	Type        string `json:"type"`
	RunID       string `json:"run_id"`
	Assignments int    `json:"assignments"`
	Timestamp   string `json:"timestamp"`
}

func (h *Hub) NotifyAllocationsUpdated(runID uuid.UUID, assignments int, at time.Time) {
	if h == nil {
		return
	}

	b, err := json.Marshal(AllocationsUpdatedEvent{
		Type:        "allocations_updated",
		RunID:       runID.String(),
		Assignments: assignments,
		Timestamp:   at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	h.Broadcast(b)
}
