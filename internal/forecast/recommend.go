package forecast

import (
	"fmt"

	"github.com/finsight/forecast-service/internal/models"
)

// Recommendation thresholds relative to daily income.
const (
	highSpendRatio    = 0.7
	foodShareLimit    = 0.3
	funShareLimit     = 0.2
	healthySpendRatio = 0.5
)

// Recommendations derives spending advice from the predicted daily spend
// and the profile. Income-relative checks are skipped when income is
// zero.
func Recommendations(predictedSpend float64, p *models.SpendingProfile) []models.Recommendation {
	var recs []models.Recommendation

	if p.DailyIncome > 0 {
		ratio := predictedSpend / p.DailyIncome
		if ratio > highSpendRatio {
			recs = append(recs, models.Recommendation{
				Type:    "warning",
				Title:   "High Spending Alert",
				Message: fmt.Sprintf("Predicted spending is %.1f%% of daily income", ratio*100),
				Action:  "Consider reducing non-essential expenses",
			})
		}
		if p.Food > p.DailyIncome*foodShareLimit {
			recs = append(recs, models.Recommendation{
				Type:    "suggestion",
				Title:   "Food Budget Optimization",
				Message: "Food expenses are high relative to income",
				Action:  "Try meal planning and home cooking",
			})
		}
		if p.Entertainment > p.DailyIncome*funShareLimit {
			recs = append(recs, models.Recommendation{
				Type:    "suggestion",
				Title:   "Entertainment Spending",
				Message: "Consider balancing entertainment with savings",
				Action:  "Look for free or low-cost activities",
			})
		}
		if ratio < healthySpendRatio {
			recs = append(recs, models.Recommendation{
				Type:    "success",
				Title:   "Great Spending Control!",
				Message: "Your spending is well within limits",
				Action:  "Consider increasing your savings rate",
			})
		}
	}

	if p.MonthlyEMI > 0 {
		recs = append(recs, models.Recommendation{
			Type:    "info",
			Title:   "Debt Management",
			Message: "Factor in EMI payments when planning expenses",
			Action:  "Prioritize debt reduction strategies",
		})
	}

	return recs
}
