package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BudgetTier is the spending level of a trip.
type BudgetTier string

const (
	BudgetTierBudget BudgetTier = "Budget"
	BudgetTierLuxury BudgetTier = "Luxury"
)

// ParseBudgetTier maps any casing of "budget" or "luxury" onto a tier.
func ParseBudgetTier(s string) (BudgetTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "budget":
		return BudgetTierBudget, nil
	case "luxury":
		return BudgetTierLuxury, nil
	default:
		return "", fmt.Errorf("budget must be one of Budget, Luxury (got %q)", s)
	}
}

func (b BudgetTier) IsLuxury() bool {
	return b == BudgetTierLuxury
}

// Preference is the label providers use to pick a price band.
func (b BudgetTier) Preference() string {
	if b.IsLuxury() {
		return "luxury"
	}
	return "cheapest"
}

func (b *BudgetTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("budget must be a string: %w", err)
	}
	tier, err := ParseBudgetTier(s)
	if err != nil {
		return err
	}
	*b = tier
	return nil
}

// TripRequest is the caller's input for one itinerary.
type TripRequest struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Days        int        `json:"days"`
	Budget      BudgetTier `json:"budget"`
}
