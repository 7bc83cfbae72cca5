package models

// Budget status values reported in insights.
const (
	StatusOverBudget  = "OverBudget"
	StatusUnderBudget = "UnderBudget"
)

// BudgetInsight classifies the weekly forecast against the dynamic budget.
// OverBudget fills the overspend fields, UnderBudget the savings fields.
type BudgetInsight struct {
	WeeklyBudget       float64          `json:"weekly_budget"`
	BudgetStatus       string           `json:"budget_status"`
	OverspendAmount    float64          `json:"overspend_amount,omitempty"`
	ReductionNeeded    float64          `json:"reduction_needed,omitempty"`
	ActualSavings      float64          `json:"actual_savings,omitempty"`
	SavingsOpportunity float64          `json:"savings_opportunity,omitempty"`
	ComparisonLastWeek float64          `json:"comparison_last_week"`
	Recommendations    []Recommendation `json:"recommendations,omitempty"`
}

// Recommendation is a single piece of spending advice attached to a forecast.
type Recommendation struct {
	Type    string `json:"type"` // warning, suggestion, info, success
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}
