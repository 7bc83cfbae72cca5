package forecast

import (
	"math"
	"time"

	"github.com/finsight/forecast-service/internal/models"
)

// Last-week reconstruction factors.
const (
	historyWeekendFactor = 1.1
	historyWeekdayFactor = 0.95
)

// ReconstructLastWeek derives 7 synthetic daily actuals for the 7
// calendar days preceding now. The baseline is the blended category sum,
// or the supplied past-7-day average when that sum is zero. The output is
// a reconstruction for comparison display, not measured history.
func ReconstructLastWeek(p *models.SpendingProfile, now time.Time) *models.LastWeekReconstruction {
	baseline := p.CategoryTotal()
	if baseline == 0 {
		baseline = p.PastWeekAvg
	}

	actuals := make([]models.DayActual, 0, 7)
	total := 0.0
	for i := 7; i >= 1; i-- {
		date := now.AddDate(0, 0, -i)
		day := date.Weekday().String()
		factor := historyWeekdayFactor
		if isWeekend(day) {
			factor = historyWeekendFactor
		}
		spend := math.Trunc(baseline * factor)
		total += spend
		actuals = append(actuals, models.DayActual{
			Date:        date.Format(dateLayout),
			DayOfWeek:   day,
			ActualSpend: spend,
		})
	}

	return &models.LastWeekReconstruction{Actuals: actuals, TotalLastWeek: total}
}
