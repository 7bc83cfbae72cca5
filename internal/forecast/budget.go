package forecast

import "github.com/finsight/forecast-service/internal/models"

// Budget policy constants, preserved from the source system as-is. The
// floor and override thresholds are fixed magic numbers in the input
// currency unit with no normalization applied.
const (
	daysPerMonth          = 30
	budgetIncomeShare     = 0.15
	budgetOverrideTrigger = 0.8
	budgetOverrideFactor  = 1.2
	budgetFloor           = 10000.0
	savingsOpportunity    = 0.10
)

// WeeklyBudget computes the dynamic budget from daily income and the
// forecast total. The override keeps the budget from landing absurdly
// below the forecast; the floor is an absolute minimum.
func WeeklyBudget(dailyIncome, totalWeekly float64) float64 {
	monthlyIncome := dailyIncome * daysPerMonth
	suggested := monthlyIncome * budgetIncomeShare
	if suggested < totalWeekly*budgetOverrideTrigger {
		suggested = totalWeekly * budgetOverrideFactor
	}
	if suggested < budgetFloor {
		suggested = budgetFloor
	}
	return suggested
}

// BuildInsights classifies the weekly forecast against the dynamic budget
// and reports the week-over-week delta.
func BuildInsights(p *models.SpendingProfile, totalWeekly, totalLastWeek float64) *models.BudgetInsight {
	budget := WeeklyBudget(p.DailyIncome, totalWeekly)

	insight := &models.BudgetInsight{
		WeeklyBudget:       budget,
		ComparisonLastWeek: totalWeekly - totalLastWeek,
	}
	if totalWeekly > budget {
		insight.BudgetStatus = models.StatusOverBudget
		insight.OverspendAmount = totalWeekly - budget
		insight.ReductionNeeded = totalWeekly - budget
	} else {
		insight.BudgetStatus = models.StatusUnderBudget
		insight.ActualSavings = budget - totalWeekly
		insight.SavingsOpportunity = totalWeekly * savingsOpportunity
	}
	return insight
}
