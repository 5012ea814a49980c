package inference

import (
	"fmt"
	"math"
)

// logisticModel is the default Classifier backend: a fitted logistic
// regression serialized as a coefficient vector plus intercept.
type logisticModel struct {
	modelType    string
	coefficients []float64
	intercept    float64
}

type logisticModelFile struct {
	ModelType    string    `json:"model_type"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func loadLogisticModel(path string, dims int) (*logisticModel, error) {
	var raw logisticModelFile
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	if len(raw.Coefficients) != dims {
		return nil, fmt.Errorf("model has %d coefficients, schema has %d slots", len(raw.Coefficients), dims)
	}
	return &logisticModel{
		modelType:    raw.ModelType,
		coefficients: raw.Coefficients,
		intercept:    raw.Intercept,
	}, nil
}

func (m *logisticModel) Predict(features []float64) (int, error) {
	probs, err := m.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	if probs[1] > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (m *logisticModel) PredictProbability(features []float64) ([2]float64, error) {
	if len(features) != len(m.coefficients) {
		return [2]float64{}, fmt.Errorf("feature vector has %d slots, model expects %d", len(features), len(m.coefficients))
	}
	z := m.intercept
	for i, c := range m.coefficients {
		z += c * features[i]
	}
	p := sigmoid(z)
	return [2]float64{1 - p, p}, nil
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// standardScaler applies the fitted standardization (x-mean)/scale
// slot-wise before classification.
type standardScaler struct {
	mean  []float64
	scale []float64
}

type standardScalerFile struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func loadStandardScaler(path string, dims int) (*standardScaler, error) {
	var raw standardScalerFile
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	if len(raw.Mean) != dims || len(raw.Scale) != dims {
		return nil, fmt.Errorf("scaler dimensions %d/%d do not match schema slots %d", len(raw.Mean), len(raw.Scale), dims)
	}
	return &standardScaler{mean: raw.Mean, scale: raw.Scale}, nil
}

func (s *standardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("feature vector has %d slots, scaler expects %d", len(features), len(s.mean))
	}
	scaled := make([]float64, len(features))
	for i, v := range features {
		if s.scale[i] == 0 {
			// zero-variance slot, pass the centered value through
			scaled[i] = v - s.mean[i]
			continue
		}
		scaled[i] = (v - s.mean[i]) / s.scale[i]
	}
	return scaled, nil
}
