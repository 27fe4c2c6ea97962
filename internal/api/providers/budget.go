package providers

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const (
	budgetCurrency      = "INR"
	budgetDailyStandard = 2000
	budgetDailyLuxury   = 5000
	budgetFallbackTotal = 5000
)

// BudgetProvider estimates trip expenses from a flat daily rate.
type BudgetProvider struct{}

func NewBudgetProvider() *BudgetProvider {
	return &BudgetProvider{}
}

func (p *BudgetProvider) Estimate(days int, category string) types.BudgetRecord {
	if days <= 0 {
		return budgetFallback(fmt.Sprintf("invalid number of days: %d", days))
	}
	rate := budgetDailyStandard
	if strings.Contains(strings.ToLower(category), "luxury") {
		rate = budgetDailyLuxury
	}
	return types.BudgetRecord{
		EstimatedTotalExpenses: rate * days,
		Currency:               budgetCurrency,
		Breakdown:              fmt.Sprintf("%d/day for %d days", rate, days),
	}
}

// EstimateFromArg accepts a loosely typed day count, as tool-calling models send them.
func (p *BudgetProvider) EstimateFromArg(days any, category string) types.BudgetRecord {
	n, err := cast.ToIntE(days)
	if err != nil {
		if s, ok := days.(string); ok {
			n, err = cast.ToIntE(strings.TrimSpace(s))
		}
	}
	if err != nil {
		return budgetFallback(fmt.Sprintf("could not read number of days from %v", days))
	}
	return p.Estimate(n, category)
}

func budgetFallback(reason string) types.BudgetRecord {
	return types.BudgetRecord{
		EstimatedTotalExpenses: budgetFallbackTotal,
		Currency:               budgetCurrency,
		Breakdown:              "flat estimate",
		Error:                  reason,
	}
}
