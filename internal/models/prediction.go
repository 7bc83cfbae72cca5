package models

import "time"

// PredictionRecord is one stored forecast in a user's history.
type PredictionRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	TotalWeekly   float64   `json:"total_weekly_spend"`
	TotalLastWeek float64   `json:"total_last_week"`
	WeeklyBudget  float64   `json:"weekly_budget"`
	BudgetStatus  string    `json:"budget_status"`
	FallbackUsed  bool      `json:"fallback_used"`
	Payload       []byte    `json:"-"` // Full response JSON as stored
	CreatedAt     time.Time `json:"created_at"`
}
