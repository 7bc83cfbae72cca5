package forecast

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/sirupsen/logrus"
)

var testColumns = []string{
	"AgeGroup", "FamilySize", "DailyIncome", "Food", "Transport", "Bills",
	"Health", "Education", "Entertainment", "Other", "DebtAmount",
	"MonthlyEMI", "LoanType", "InterestRate",
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// newTestHandle writes artifact files with the given coefficients and
// loads them into a fresh handle.
func newTestHandle(t *testing.T, intercept float64, coeffs map[string]float64) *mlmodel.Handle {
	t.Helper()
	dir := t.TempDir()

	aligned := make([]float64, len(testColumns))
	for i, col := range testColumns {
		aligned[i] = coeffs[col]
	}
	model, err := json.Marshal(map[string]any{"intercept": intercept, "coefficients": aligned})
	if err != nil {
		t.Fatal(err)
	}
	encoders, err := json.Marshal(map[string]any{
		"encoders": map[string]any{
			"AgeGroup": map[string]any{"classes": []string{"18-25", "26-35", "36-45", "46-60", "60+"}},
			"LoanType": map[string]any{"classes": []string{"None", "Personal", "Home", "Vehicle"}},
		},
		"feature_columns": testColumns,
	})
	if err != nil {
		t.Fatal(err)
	}

	modelPath := filepath.Join(dir, "model.json")
	encodersPath := filepath.Join(dir, "encoders.json")
	if err := os.WriteFile(modelPath, model, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(encodersPath, encoders, 0o644); err != nil {
		t.Fatal(err)
	}

	handle := mlmodel.NewHandle(modelPath, encodersPath, testLogger())
	if err := handle.Load(); err != nil {
		t.Fatalf("failed to load test artifacts: %v", err)
	}
	return handle
}

func workingHandle(t *testing.T) *mlmodel.Handle {
	return newTestHandle(t, 100, map[string]float64{"AgeGroup": 10, "Food": 1, "Transport": 1, "Entertainment": 1})
}

// brokenHandle loads artifacts whose coefficients overflow float64 on any
// non-trivial profile, forcing an inference-time ModelError.
func brokenHandle(t *testing.T) *mlmodel.Handle {
	return newTestHandle(t, 0, map[string]float64{"Food": 1e308, "Transport": 1e308})
}

func TestNextMonday(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"wednesday", time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC), "2025-01-13"},
		{"sunday", time.Date(2025, 1, 12, 23, 0, 0, 0, time.UTC), "2025-01-13"},
		{"monday skips to next week", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), "2025-01-20"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextMonday(tc.now).Format(dateLayout)
			if got != tc.want {
				t.Errorf("nextMonday(%s) = %s, want %s", tc.now.Format(dateLayout), got, tc.want)
			}
		})
	}
}

func TestForecastModelPath(t *testing.T) {
	engine := NewEngine(workingHandle(t), testLogger())
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC) // Wednesday

	fc, err := engine.Forecast(sampleProfile(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fc.Predictions) != 7 {
		t.Fatalf("predictions = %d, want 7", len(fc.Predictions))
	}
	if fc.Predictions[0].Date != "2025-01-13" || fc.Predictions[0].DayOfWeek != "Monday" {
		t.Errorf("window start = %s (%s), want 2025-01-13 Monday", fc.Predictions[0].Date, fc.Predictions[0].DayOfWeek)
	}
	if fc.Predictions[6].Date != "2025-01-19" || fc.Predictions[6].DayOfWeek != "Sunday" {
		t.Errorf("window end = %s (%s), want 2025-01-19 Sunday", fc.Predictions[6].Date, fc.Predictions[6].DayOfWeek)
	}
	for i := 1; i < 7; i++ {
		prev, _ := time.Parse(dateLayout, fc.Predictions[i-1].Date)
		cur, _ := time.Parse(dateLayout, fc.Predictions[i].Date)
		if cur.Sub(prev) != 24*time.Hour {
			t.Errorf("dates not consecutive at index %d: %s -> %s", i, prev.Format(dateLayout), cur.Format(dateLayout))
		}
	}

	// Mon-Fri 741 each, Sat-Sun 960 each.
	sum := 0.0
	for i, d := range fc.Predictions {
		want := 741.0
		if i >= 5 {
			want = 960.0
		}
		if d.PredictedSpend != want {
			t.Errorf("day %d (%s) = %v, want %v", i, d.DayOfWeek, d.PredictedSpend, want)
		}
		sum += d.PredictedSpend
	}
	if fc.TotalWeekly != sum {
		t.Errorf("total = %v, want exact sum %v", fc.TotalWeekly, sum)
	}

	if fc.FallbackUsed {
		t.Error("fallback used on healthy model path")
	}
	if fc.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want High", fc.Confidence)
	}
	if fc.ModelAccuracy != ModelAccuracy {
		t.Errorf("accuracy = %v, want %v", fc.ModelAccuracy, ModelAccuracy)
	}
}

func TestForecastSwitchesToFallbackForWholeWeek(t *testing.T) {
	engine := NewEngine(brokenHandle(t), testLogger())
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	p := sampleProfile()

	fc, err := engine.Forecast(p, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fc.FallbackUsed {
		t.Fatal("fallback_used = false, want true")
	}
	if fc.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want Medium", fc.Confidence)
	}
	if fc.ModelAccuracy != FallbackAccuracy {
		t.Errorf("accuracy = %v, want %v", fc.ModelAccuracy, FallbackAccuracy)
	}

	// Every day must come from the fallback formula; no mixed paths.
	for _, d := range fc.Predictions {
		if want := fallbackPredict(p, d.DayOfWeek); d.PredictedSpend != want {
			t.Errorf("%s = %v, want fallback value %v", d.DayOfWeek, d.PredictedSpend, want)
		}
	}
	if want := 5*1360.0 + 2*1420.0; fc.TotalWeekly != want {
		t.Errorf("total = %v, want %v", fc.TotalWeekly, want)
	}
}

func TestForecastModelUnavailable(t *testing.T) {
	handle := mlmodel.NewHandle("missing-model.json", "missing-encoders.json", testLogger())
	engine := NewEngine(handle, testLogger())

	_, err := engine.Forecast(sampleProfile(), time.Now())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("err = %v, want ErrModelUnavailable", err)
	}
}

func TestPredictDailyTomorrow(t *testing.T) {
	engine := NewEngine(workingHandle(t), testLogger())
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC) // Friday

	pred, fallbackUsed, err := engine.PredictDaily(sampleProfile(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fallbackUsed {
		t.Error("fallback used on healthy model path")
	}
	if pred.Date != "2025-01-11" || pred.DayOfWeek != "Saturday" {
		t.Errorf("prediction for %s (%s), want 2025-01-11 Saturday", pred.Date, pred.DayOfWeek)
	}
	if pred.PredictedSpend != 960 {
		t.Errorf("predicted spend = %v, want 960", pred.PredictedSpend)
	}
}

func TestPredictDailyFallback(t *testing.T) {
	engine := NewEngine(brokenHandle(t), testLogger())
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	p := sampleProfile()

	pred, fallbackUsed, err := engine.PredictDaily(p, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fallbackUsed {
		t.Fatal("fallback_used = false, want true")
	}
	if pred.PredictedSpend != fallbackPredict(p, "Saturday") {
		t.Errorf("predicted spend = %v, want fallback value", pred.PredictedSpend)
	}
}
