package forecast

import (
	"math"

	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/finsight/forecast-service/internal/models"
)

// Fixed accuracy labels per prediction path. These are reported labels,
// not statistically computed scores.
const (
	ModelAccuracy    = 97.0
	FallbackAccuracy = 85.0

	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
)

// predictDay runs the model path for one day: day boost, categorical
// encoding, schema assembly, regression, post-prediction day factor,
// rounded to the integer currency unit. Any failure is a ModelError; the
// orchestrator treats the first one as a full-week event.
func predictDay(snap *mlmodel.Snapshot, p *models.SpendingProfile, day string) (float64, error) {
	boosted := applyDayBoost(p, day)
	row := encodeProfile(boosted, snap.Encoders)
	features := assembleFeatures(row, snap.FeatureColumns)

	raw, err := snap.Model.Predict(features)
	if err != nil {
		return 0, &ModelError{Day: day, Err: err}
	}

	factor := weekdayModelFactor
	if isWeekend(day) {
		factor = weekendModelFactor
	}
	pred := math.Round(raw * factor)
	if pred < 0 {
		pred = 0
	}
	return pred, nil
}

// Fallback weight sets. The day-type prior lives in the weights
// themselves: weekends lean on entertainment, weekdays on transport.
var (
	weekdayWeights = categoryWeights{food: 1.0, transport: 1.2, bills: 1.0, health: 1.0, education: 1.0, entertainment: 0.8, other: 1.0}
	weekendWeights = categoryWeights{food: 1.2, transport: 0.7, bills: 1.0, health: 1.0, education: 1.0, entertainment: 1.4, other: 1.1}
)

type categoryWeights struct {
	food, transport, bills, health, education, entertainment, other float64
}

// fallbackPredict is the deterministic non-model path: a day-typed
// weighted sum over the validated profile's category fields. Pure
// arithmetic over non-negative numbers, it never fails.
func fallbackPredict(p *models.SpendingProfile, day string) float64 {
	w := weekdayWeights
	if isWeekend(day) {
		w = weekendWeights
	}
	sum := p.Food*w.food +
		p.Transport*w.transport +
		p.Bills*w.bills +
		p.Health*w.health +
		p.Education*w.education +
		p.Entertainment*w.entertainment +
		p.Other*w.other
	return math.Round(sum)
}
