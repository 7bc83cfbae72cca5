package models

// SpendingProfile is the typed view of one forecast request. It is built
// fresh per request and never persisted.
type SpendingProfile struct {
	AgeGroup      string  `json:"age_group"`
	FamilySize    int     `json:"family_size"`
	DailyIncome   float64 `json:"daily_income"`
	Food          float64 `json:"food"`
	Transport     float64 `json:"transport"`
	Bills         float64 `json:"bills"`
	Health        float64 `json:"health"`
	Education     float64 `json:"education"`
	Entertainment float64 `json:"entertainment"`
	Other         float64 `json:"other"`
	DebtAmount    float64 `json:"debt_amount"`
	MonthlyEMI    float64 `json:"monthly_emi"`
	LoanType      string  `json:"loan_type"`
	InterestRate  float64 `json:"interest_rate"`
	PastWeekAvg   float64 `json:"past_7day_avg"`
}

// CategoryTotal sums the seven spending categories.
func (p *SpendingProfile) CategoryTotal() float64 {
	return p.Food + p.Transport + p.Bills + p.Health + p.Education + p.Entertainment + p.Other
}
