package forecast

import (
	"encoding/json"
	"strconv"

	"github.com/finsight/forecast-service/internal/models"
)

// Defaults applied for fields absent from the request.
const (
	defaultAgeGroup   = "26-35"
	defaultFamilySize = 1
	defaultLoanType   = "None"
)

// BuildProfile turns the loosely-typed request mapping into a typed
// SpendingProfile. Missing fields take their defaults; a present field
// that cannot be coerced to its declared type fails the whole request
// with an InputError.
func BuildProfile(raw map[string]any) (*models.SpendingProfile, error) {
	p := &models.SpendingProfile{
		AgeGroup:   defaultAgeGroup,
		FamilySize: defaultFamilySize,
		LoanType:   defaultLoanType,
	}

	if v, ok := raw["age_group"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, &InputError{Field: "age_group", Value: v}
		}
		p.AgeGroup = s
	}
	if v, ok := raw["loan_type"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, &InputError{Field: "loan_type", Value: v}
		}
		p.LoanType = s
	}
	if v, ok := raw["family_size"]; ok {
		n, err := coerceFloat("family_size", v)
		if err != nil {
			return nil, err
		}
		p.FamilySize = int(n)
	}

	numeric := []struct {
		key string
		dst *float64
	}{
		{"daily_income", &p.DailyIncome},
		{"food", &p.Food},
		{"transport", &p.Transport},
		{"bills", &p.Bills},
		{"health", &p.Health},
		{"education", &p.Education},
		{"entertainment", &p.Entertainment},
		{"other", &p.Other},
		{"debt_amount", &p.DebtAmount},
		{"monthly_emi", &p.MonthlyEMI},
		{"interest_rate", &p.InterestRate},
		{"past_7day_avg", &p.PastWeekAvg},
	}
	for _, f := range numeric {
		v, ok := raw[f.key]
		if !ok || v == nil {
			continue
		}
		n, err := coerceFloat(f.key, v)
		if err != nil {
			return nil, err
		}
		*f.dst = n
	}

	return p, nil
}

// ValidateProfile is the gate ahead of the orchestrator: a profile whose
// seven category fields sum to exactly zero cannot produce a meaningful
// forecast and is rejected before any predictor runs.
func ValidateProfile(p *models.SpendingProfile) error {
	if p.CategoryTotal() == 0 {
		return &ValidationError{Reason: "no spending data available"}
	}
	return nil
}

// coerceFloat accepts the value shapes a decoded JSON body can carry for
// a numeric field: float64, json.Number, or a numeric string.
func coerceFloat(field string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, &InputError{Field: field, Value: v}
		}
		return n, nil
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, &InputError{Field: field, Value: v}
		}
		return n, nil
	default:
		return 0, &InputError{Field: field, Value: v}
	}
}
