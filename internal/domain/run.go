package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names shared with run producers
const (
	StreamProFormaRun  = "stream:proforma:run"
	StreamProFormaDone = "stream:proforma:done"
)

// RunRequestEvent - asks a worker to evaluate every stored site
type RunRequestEvent struct {
	RunID uuid.UUID `json:"run_id"`
	// Forms to evaluate; empty means the engine's forms_to_test
	Forms       []string  `json:"forms,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// HasForms reports whether the request names its own forms
func (e *RunRequestEvent) HasForms() bool {
	return len(e.Forms) > 0
}

// RunDoneEvent - outcome of a run, published once results are stored
type RunDoneEvent struct {
	RunID uuid.UUID `json:"run_id"`
	// Feasible counts feasible sites per form
	Feasible   map[string]int `json:"feasible,omitempty"`
	Sites      int            `json:"sites"`
	Error      string         `json:"error,omitempty"`
	FinishedAt time.Time      `json:"finished_at"`
}

// StreamMessage - a raw Redis Stream entry
type StreamMessage struct {
	ID   string
	Data string
}
