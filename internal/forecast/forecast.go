// Package forecast implements the spend forecasting pipeline: profile
// building and validation, feature encoding, the model and fallback
// prediction paths, the weekly orchestrator, last-week reconstruction,
// and the budget insight engine.
package forecast

import (
	"time"

	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/finsight/forecast-service/internal/models"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// Engine drives predictions against the shared model handle. It holds no
// per-request state; every invocation allocates its own structures.
type Engine struct {
	handle *mlmodel.Handle
	log    *logrus.Logger
}

// NewEngine creates a forecasting engine over the given model handle.
func NewEngine(handle *mlmodel.Handle, log *logrus.Logger) *Engine {
	return &Engine{handle: handle, log: log}
}

// nextMonday returns the Monday strictly after now. A call made on a
// Monday forecasts the following week, never the partial current one.
func nextMonday(now time.Time) time.Time {
	offset := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return now.AddDate(0, 0, offset)
}

// Forecast produces the 7-day forecast for the next full week. The model
// path is attempted for the whole week first; on the first ModelError all
// partial results are discarded and the entire week is recomputed via the
// fallback predictor, so a forecast never mixes paths.
func (e *Engine) Forecast(p *models.SpendingProfile, now time.Time) (*models.WeeklyForecast, error) {
	snap := e.handle.Snapshot()
	if snap == nil {
		return nil, ErrModelUnavailable
	}

	start := nextMonday(now)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}

	predictions, err := e.modelWeek(snap, p, days)
	fallbackUsed := false
	if err != nil {
		e.log.Warnf("Model path failed, recomputing week via fallback: %v", err)
		predictions = fallbackWeek(p, days)
		fallbackUsed = true
	}

	total := 0.0
	for _, d := range predictions {
		total += d.PredictedSpend
	}

	fc := &models.WeeklyForecast{
		Predictions:   predictions,
		TotalWeekly:   total,
		Confidence:    ConfidenceHigh,
		ModelAccuracy: ModelAccuracy,
		FallbackUsed:  fallbackUsed,
	}
	if fallbackUsed {
		fc.Confidence = ConfidenceMedium
		fc.ModelAccuracy = FallbackAccuracy
	}
	return fc, nil
}

// PredictDaily forecasts a single day (tomorrow relative to now) using
// the same model-or-fallback policy as the weekly path.
func (e *Engine) PredictDaily(p *models.SpendingProfile, now time.Time) (models.DayPrediction, bool, error) {
	snap := e.handle.Snapshot()
	if snap == nil {
		return models.DayPrediction{}, false, ErrModelUnavailable
	}

	date := now.AddDate(0, 0, 1)
	day := date.Weekday().String()

	spend, err := predictDay(snap, p, day)
	fallbackUsed := false
	if err != nil {
		e.log.Warnf("Model path failed for daily prediction, using fallback: %v", err)
		spend = fallbackPredict(p, day)
		fallbackUsed = true
	}

	return models.DayPrediction{
		Date:           date.Format(dateLayout),
		DayOfWeek:      day,
		PredictedSpend: spend,
	}, fallbackUsed, nil
}

// modelWeek attempts the model path for every day, aborting on the first
// failure so the orchestrator can discard the partial week.
func (e *Engine) modelWeek(snap *mlmodel.Snapshot, p *models.SpendingProfile, days []time.Time) ([]models.DayPrediction, error) {
	predictions := make([]models.DayPrediction, 0, len(days))
	for _, date := range days {
		day := date.Weekday().String()
		spend, err := predictDay(snap, p, day)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, models.DayPrediction{
			Date:           date.Format(dateLayout),
			DayOfWeek:      day,
			PredictedSpend: spend,
		})
	}
	return predictions, nil
}

func fallbackWeek(p *models.SpendingProfile, days []time.Time) []models.DayPrediction {
	predictions := make([]models.DayPrediction, 0, len(days))
	for _, date := range days {
		day := date.Weekday().String()
		predictions = append(predictions, models.DayPrediction{
			Date:           date.Format(dateLayout),
			DayOfWeek:      day,
			PredictedSpend: fallbackPredict(p, day),
		})
	}
	return predictions
}
