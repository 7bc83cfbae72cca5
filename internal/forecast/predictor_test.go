package forecast

import (
	"testing"

	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/finsight/forecast-service/internal/models"
)

func sampleProfile() *models.SpendingProfile {
	return &models.SpendingProfile{
		AgeGroup:      "26-35",
		FamilySize:    2,
		DailyIncome:   10000,
		Food:          300,
		Transport:     200,
		Bills:         500,
		Health:        100,
		Education:     0,
		Entertainment: 150,
		Other:         100,
		LoanType:      "None",
	}
}

func TestFallbackPredictExactArithmetic(t *testing.T) {
	p := sampleProfile()

	// Weekday: 300 + 200*1.2 + 500 + 100 + 0 + 150*0.8 + 100
	if got := fallbackPredict(p, "Tuesday"); got != 1360 {
		t.Errorf("weekday fallback = %v, want 1360", got)
	}
	// Weekend: 300*1.2 + 200*0.7 + 500 + 100 + 0 + 150*1.4 + 100*1.1
	if got := fallbackPredict(p, "Saturday"); got != 1420 {
		t.Errorf("weekend fallback = %v, want 1420", got)
	}
	if got := fallbackPredict(p, "Sunday"); got != 1420 {
		t.Errorf("sunday fallback = %v, want 1420", got)
	}
}

func TestFallbackPredictZeroSafe(t *testing.T) {
	p := &models.SpendingProfile{Food: 0.2}
	if got := fallbackPredict(p, "Monday"); got != 0 {
		t.Errorf("fallback = %v, want 0 after rounding", got)
	}
}

func TestApplyDayBoost(t *testing.T) {
	p := sampleProfile()

	weekend := applyDayBoost(p, "Saturday")
	if weekend.Entertainment != 150*1.3 {
		t.Errorf("weekend entertainment = %v, want %v", weekend.Entertainment, 150*1.3)
	}
	if weekend.Food != 300*1.1 {
		t.Errorf("weekend food = %v, want %v", weekend.Food, 300*1.1)
	}
	if weekend.Transport != 200 {
		t.Errorf("weekend transport = %v, want unchanged 200", weekend.Transport)
	}

	weekday := applyDayBoost(p, "Wednesday")
	if weekday.Transport != 200*1.1 {
		t.Errorf("weekday transport = %v, want %v", weekday.Transport, 200*1.1)
	}
	if weekday.Food != 300 || weekday.Entertainment != 150 {
		t.Errorf("weekday food/entertainment changed: %+v", weekday)
	}

	// The input profile is never mutated.
	if p.Food != 300 || p.Transport != 200 || p.Entertainment != 150 {
		t.Errorf("source profile mutated: %+v", p)
	}
}

// testSnapshot builds artifacts with intercept 100, unit coefficients for
// Food, Transport and Entertainment, and 10 for the AgeGroup code.
func testSnapshot() *mlmodel.Snapshot {
	columns := []string{
		"AgeGroup", "FamilySize", "DailyIncome", "Food", "Transport", "Bills",
		"Health", "Education", "Entertainment", "Other", "DebtAmount",
		"MonthlyEMI", "LoanType", "InterestRate",
	}
	coeffs := make([]float64, len(columns))
	coeffs[0] = 10 // AgeGroup
	coeffs[3] = 1  // Food
	coeffs[4] = 1  // Transport
	coeffs[8] = 1  // Entertainment
	return &mlmodel.Snapshot{
		Model:          &mlmodel.Regression{Intercept: 100, Coefficients: coeffs},
		Encoders: map[string]*mlmodel.LabelEncoder{
			"AgeGroup": {Classes: []string{"18-25", "26-35", "36-45", "46-60", "60+"}},
			"LoanType": {Classes: []string{"None", "Personal", "Home", "Vehicle"}},
		},
		FeatureColumns: columns,
	}
}

func TestPredictDayModelPath(t *testing.T) {
	snap := testSnapshot()
	p := sampleProfile() // AgeGroup 26-35 encodes to 1

	// Weekday: (100 + 10 + 300 + 200*1.1 + 150) * 0.95
	got, err := predictDay(snap, p, "Monday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 741 {
		t.Errorf("weekday prediction = %v, want 741", got)
	}

	// Weekend: (100 + 10 + 300*1.1 + 200 + 150*1.3) * 1.15
	got, err = predictDay(snap, p, "Sunday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 960 {
		t.Errorf("weekend prediction = %v, want 960", got)
	}
}

func TestPredictDayUnknownCategoryUsesDefaultCode(t *testing.T) {
	snap := testSnapshot()
	p := sampleProfile()
	p.AgeGroup = "105-120" // never seen by the encoder, resolves to class 0

	// Weekend: (100 + 0 + 300*1.1 + 200 + 150*1.3) * 1.15
	got, err := predictDay(snap, p, "Sunday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 949 {
		t.Errorf("prediction = %v, want 949", got)
	}
}

func TestPredictDayClampsNegativeToZero(t *testing.T) {
	snap := testSnapshot()
	snap.Model.Intercept = -100000
	got, err := predictDay(snap, sampleProfile(), "Monday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("prediction = %v, want clamp to 0", got)
	}
}

func TestPredictDayNonFiniteIsModelError(t *testing.T) {
	snap := testSnapshot()
	snap.Model.Coefficients[3] = 1e308 // overflows with any non-trivial food spend
	_, err := predictDay(snap, sampleProfile(), "Monday")
	if err == nil {
		t.Fatal("expected ModelError, got nil")
	}
	if _, ok := err.(*ModelError); !ok {
		t.Fatalf("err = %T, want *ModelError", err)
	}
}

func TestAssembleFeaturesSchemaExact(t *testing.T) {
	row := map[string]float64{"Food": 300, "Extra": 42}
	schema := []string{"Food", "Transport", "IsWeekend"}

	features := assembleFeatures(row, schema)
	if len(features) != 3 {
		t.Fatalf("len = %d, want 3", len(features))
	}
	if features[0] != 300 {
		t.Errorf("Food = %v, want 300", features[0])
	}
	// Schema fields absent from the row are zero-filled; extras dropped.
	if features[1] != 0 || features[2] != 0 {
		t.Errorf("missing fields not zero-filled: %v", features)
	}
}
