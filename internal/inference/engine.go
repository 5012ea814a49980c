package inference

import (
	"fmt"
	"log/slog"
)

// Fallback heuristic coefficients. These reproduce the reference
// behavior exactly and are a documented approximation, not a model.
const (
	fallbackBase               = 0.3
	fallbackOvertimeWeight     = 0.2
	fallbackSatisfactionWeight = 0.3
	fallbackBalanceWeight      = 0.2
	fallbackFloor              = 0.05
	fallbackCeiling            = 0.95
)

// Risk level thresholds on the leave probability.
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.3
)

// Prediction is the outcome of one assessment. The probability pair
// always sums to 1 with both entries in [0,1].
type Prediction struct {
	WillLeave        bool    `json:"will_leave"`
	StayProbability  float64 `json:"stay_probability"`
	LeaveProbability float64 `json:"leave_probability"`
}

// RiskLevel buckets the leave probability the way the assessment UI
// reports it.
func (p *Prediction) RiskLevel() string {
	switch {
	case p.LeaveProbability > highRiskThreshold:
		return "high"
	case p.LeaveProbability > mediumRiskThreshold:
		return "medium"
	default:
		return "low"
	}
}

// Engine scores attribute sets. It runs in model mode when trained
// artifacts loaded successfully and in fallback mode otherwise; the mode
// is fixed at construction and the engine is safe for concurrent use.
type Engine struct {
	artifacts *Artifacts // nil in fallback mode
	metadata  Metadata
}

// NewEngine loads artifacts from dir and decides the engine mode once.
// A missing or corrupt artifact set is never fatal: the engine degrades
// to the additive heuristic and reports demo metadata.
func NewEngine(dir string) *Engine {
	arts, err := LoadArtifacts(dir)
	if err != nil {
		slog.Warn("model artifacts unavailable, running in fallback mode", "dir", dir, "error", err)
		return &Engine{metadata: DefaultMetadata()}
	}
	slog.Info("model artifacts loaded",
		"model_type", arts.Metadata.ModelType,
		"features", len(arts.FeatureNames),
		"scaler", arts.Scaler != nil)
	return &Engine{artifacts: arts, metadata: arts.Metadata}
}

// NewEngineWithArtifacts builds a model-mode engine from already-loaded
// artifacts, or a fallback engine when arts is nil.
func NewEngineWithArtifacts(arts *Artifacts) *Engine {
	if arts == nil {
		return &Engine{metadata: DefaultMetadata()}
	}
	return &Engine{artifacts: arts, metadata: arts.Metadata}
}

// Mode reports "model" or "fallback".
func (e *Engine) Mode() string {
	if e.artifacts != nil {
		return "model"
	}
	return "fallback"
}

// Metadata returns the model performance metadata (demo defaults in
// fallback mode).
func (e *Engine) Metadata() Metadata { return e.metadata }

// Score produces a prediction for one attribute set. In model mode any
// scaler or classifier failure, including a panic inside an opaque
// backend, is caught and returned as an error with a nil prediction; the
// caller decides whether to retry. Fallback mode cannot fail.
func (e *Engine) Score(attrs AttributeSet) (pred *Prediction, err error) {
	if e.artifacts == nil {
		return e.scoreFallback(attrs), nil
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("classifier backend panicked", "panic", r)
			pred = nil
			err = fmt.Errorf("classifier backend panicked: %v", r)
		}
	}()

	features := Encode(attrs, e.artifacts.FeatureNames)

	if e.artifacts.Scaler != nil {
		features, err = e.artifacts.Scaler.Transform(features)
		if err != nil {
			return nil, fmt.Errorf("scaler transform failed: %w", err)
		}
	}

	probs, err := e.artifacts.Model.PredictProbability(features)
	if err != nil {
		return nil, fmt.Errorf("classifier prediction failed: %w", err)
	}
	label, err := e.artifacts.Model.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("classifier prediction failed: %w", err)
	}

	return &Prediction{
		WillLeave:        label == 1,
		StayProbability:  probs[0],
		LeaveProbability: probs[1],
	}, nil
}

// scoreFallback computes the additive heuristic risk. Missing
// satisfaction tiers default to 3 ("High") so a sparse attribute set
// scores like an unremarkable employee rather than a distressed one.
func (e *Engine) scoreFallback(attrs AttributeSet) *Prediction {
	risk := fallbackBase +
		fallbackOvertimeWeight*attrs.valueOr(AttrOverTime, 0) +
		fallbackSatisfactionWeight*(1-attrs.valueOr(AttrJobSatisfaction, 3)/4) +
		fallbackBalanceWeight*(1-attrs.valueOr(AttrWorkLifeBalance, 3)/4)
	risk = clamp(risk, fallbackFloor, fallbackCeiling)

	return &Prediction{
		WillLeave:        risk > 0.5,
		StayProbability:  1 - risk,
		LeaveProbability: risk,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
