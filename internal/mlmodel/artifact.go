// Package mlmodel loads the trained regression model and its label
// encoders from JSON artifact files exported by the training job, and
// exposes them through a handle that is safe for concurrent readers.
package mlmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// LabelEncoder maps one categorical field's string values to the integer
// codes the model was trained with. Codes are the index of the value in
// the learned class list. An unseen value maps to the first known class;
// this mirrors the training service's encode-or-default behavior and is a
// known approximation, not a considered default.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Encode returns the code for value, falling back to class 0 for values
// outside the learned vocabulary. The fallback is deterministic: the same
// unknown value always yields code 0.
func (e *LabelEncoder) Encode(value string) int {
	for i, c := range e.Classes {
		if c == value {
			return i
		}
	}
	return 0
}

// Regression is a linear model: prediction = intercept + coefficients · x.
// Coefficients are aligned with the feature schema order.
type Regression struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Predict evaluates the regression on a schema-ordered feature vector.
func (m *Regression) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), len(m.Coefficients))
	}
	pred := m.Intercept
	for i, f := range features {
		pred += m.Coefficients[i] * f
	}
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return 0, fmt.Errorf("model produced non-finite prediction")
	}
	return pred, nil
}

// Snapshot is one immutable set of loaded artifacts. Requests hold a
// snapshot for their whole lifetime; a reload never mutates one in place.
type Snapshot struct {
	Model          *Regression
	Encoders       map[string]*LabelEncoder
	FeatureColumns []string
}

// Handle is the process-wide accessor for the model artifacts. It starts
// unavailable and becomes available after the first successful Load; a
// failed load leaves the previous snapshot in place.
type Handle struct {
	modelPath    string
	encodersPath string
	log          *logrus.Logger
	current      atomic.Pointer[Snapshot]
}

// NewHandle creates an unloaded handle for the given artifact paths.
func NewHandle(modelPath, encodersPath string, log *logrus.Logger) *Handle {
	return &Handle{modelPath: modelPath, encodersPath: encodersPath, log: log}
}

type encodersFile struct {
	Encoders       map[string]*LabelEncoder `json:"encoders"`
	FeatureColumns []string                 `json:"feature_columns"`
}

// Load reads both artifact files and atomically swaps them in. Safe to
// call while requests are being served.
func (h *Handle) Load() error {
	rawModel, err := os.ReadFile(h.modelPath)
	if err != nil {
		return fmt.Errorf("failed to read model artifact: %w", err)
	}
	var model Regression
	if err := json.Unmarshal(rawModel, &model); err != nil {
		return fmt.Errorf("failed to parse model artifact: %w", err)
	}

	rawEnc, err := os.ReadFile(h.encodersPath)
	if err != nil {
		return fmt.Errorf("failed to read encoders artifact: %w", err)
	}
	var enc encodersFile
	if err := json.Unmarshal(rawEnc, &enc); err != nil {
		return fmt.Errorf("failed to parse encoders artifact: %w", err)
	}

	if len(enc.FeatureColumns) == 0 {
		return fmt.Errorf("encoders artifact declares no feature columns")
	}
	if len(model.Coefficients) != len(enc.FeatureColumns) {
		return fmt.Errorf("model has %d coefficients but schema has %d columns", len(model.Coefficients), len(enc.FeatureColumns))
	}

	h.current.Store(&Snapshot{
		Model:          &model,
		Encoders:       enc.Encoders,
		FeatureColumns: enc.FeatureColumns,
	})
	h.log.Infof("Model artifacts loaded: %d features, %d encoders", len(enc.FeatureColumns), len(enc.Encoders))
	return nil
}

// Snapshot returns the current artifacts, or nil when the model is
// unavailable.
func (h *Handle) Snapshot() *Snapshot {
	return h.current.Load()
}

// Available reports whether a model has been loaded.
func (h *Handle) Available() bool {
	return h.current.Load() != nil
}
