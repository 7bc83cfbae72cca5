package models

// DayPrediction is one forecasted day in the upcoming week.
type DayPrediction struct {
	Date           string  `json:"date"` // Format: YYYY-MM-DD
	DayOfWeek      string  `json:"day_of_week"`
	PredictedSpend float64 `json:"predicted_spend"`
}

// DayActual is one reconstructed day of the previous week. The values are
// synthetic, derived from the request profile for comparison display only.
type DayActual struct {
	Date        string  `json:"date"` // Format: YYYY-MM-DD
	DayOfWeek   string  `json:"day_of_week"`
	ActualSpend float64 `json:"actual_spend"`
}

// WeeklyForecast is the aggregated 7-day forecast, Monday through Sunday
// of the next full week.
type WeeklyForecast struct {
	Predictions   []DayPrediction `json:"weekly_predictions"`
	TotalWeekly   float64         `json:"total_weekly_spend"`
	Confidence    string          `json:"confidence_level"`
	ModelAccuracy float64         `json:"model_accuracy"`
	FallbackUsed  bool            `json:"fallback_used"`
}

// LastWeekReconstruction holds the 7 synthetic daily actuals preceding the
// request time.
type LastWeekReconstruction struct {
	Actuals       []DayActual `json:"last_week_actual"`
	TotalLastWeek float64     `json:"total_last_week"`
}

// WeeklyForecastResponse is the full success payload for a weekly forecast.
type WeeklyForecastResponse struct {
	Success         bool            `json:"success"`
	Predictions     []DayPrediction `json:"weekly_predictions"`
	TotalWeekly     float64         `json:"total_weekly_spend"`
	LastWeekActual  []DayActual     `json:"last_week_actual"`
	TotalLastWeek   float64         `json:"total_last_week"`
	ModelAccuracy   float64         `json:"model_accuracy"`
	ConfidenceLevel string          `json:"confidence_level"`
	Insights        *BudgetInsight  `json:"insights"`
	FallbackUsed    bool            `json:"fallback_used"`
	WeeklyBudget    float64         `json:"weekly_budget"`
}

// DailyForecastResponse is the success payload for a single-day forecast.
type DailyForecastResponse struct {
	Success         bool             `json:"success"`
	Prediction      DayPrediction    `json:"prediction"`
	ModelAccuracy   float64          `json:"model_accuracy"`
	ConfidenceLevel string           `json:"confidence_level"`
	FallbackUsed    bool             `json:"fallback_used"`
	Recommendations []Recommendation `json:"recommendations"`
}
