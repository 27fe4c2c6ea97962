package types

import (
	"github.com/google/uuid"
)

// LlmInteraction is the diagnostic record of one generation call. It is logged, never stored.
type LlmInteraction struct {
	ID           uuid.UUID       `json:"id"`
	Prompt       string          `json:"prompt"`
	ResponseText string          `json:"response_text"`
	ModelUsed    string          `json:"model_used"`
	LatencyMs    int             `json:"latency_ms"`
	Outcome      ItinerarySource `json:"outcome"`
	Error        string          `json:"error,omitempty"`
}
