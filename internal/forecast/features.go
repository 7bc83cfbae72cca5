package forecast

import (
	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/finsight/forecast-service/internal/models"
)

// Day-of-week adjustment factors. The pre-prediction boost reshapes the
// profile ahead of encoding; the post-prediction factors scale the raw
// model output. The fallback predictor carries its own day-typed weights
// and uses neither.
const (
	weekendEntertainmentBoost = 1.3
	weekendFoodBoost          = 1.1
	weekdayTransportBoost     = 1.1

	weekendModelFactor = 1.15
	weekdayModelFactor = 0.95
)

func isWeekend(day string) bool {
	return day == "Saturday" || day == "Sunday"
}

// applyDayBoost returns a copy of the profile adjusted for the given day
// of week. The input profile is never mutated.
func applyDayBoost(p *models.SpendingProfile, day string) *models.SpendingProfile {
	boosted := *p
	if isWeekend(day) {
		boosted.Entertainment *= weekendEntertainmentBoost
		boosted.Food *= weekendFoodBoost
	} else {
		boosted.Transport *= weekdayTransportBoost
	}
	return &boosted
}

// encodeProfile maps the profile onto the model's field names, replacing
// categorical values with their learned codes.
func encodeProfile(p *models.SpendingProfile, encoders map[string]*mlmodel.LabelEncoder) map[string]float64 {
	row := map[string]float64{
		"FamilySize":    float64(p.FamilySize),
		"DailyIncome":   p.DailyIncome,
		"Food":          p.Food,
		"Transport":     p.Transport,
		"Bills":         p.Bills,
		"Health":        p.Health,
		"Education":     p.Education,
		"Entertainment": p.Entertainment,
		"Other":         p.Other,
		"DebtAmount":    p.DebtAmount,
		"MonthlyEMI":    p.MonthlyEMI,
		"InterestRate":  p.InterestRate,
	}
	categorical := map[string]string{
		"AgeGroup": p.AgeGroup,
		"LoanType": p.LoanType,
	}
	for field, value := range categorical {
		if enc, ok := encoders[field]; ok {
			row[field] = float64(enc.Encode(value))
		}
	}
	return row
}

// assembleFeatures projects the encoded row onto the model's declared
// schema: every schema field absent from the row becomes 0, extra row
// fields are dropped, and order follows the schema exactly. The output is
// schema-exact by construction, so the regression never sees a malformed
// shape.
func assembleFeatures(row map[string]float64, schema []string) []float64 {
	features := make([]float64, len(schema))
	for i, col := range schema {
		features[i] = row[col] // zero value for absent fields
	}
	return features
}
