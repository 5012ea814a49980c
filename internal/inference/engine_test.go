package inference

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

// writeTestArtifacts writes a minimal two-slot logistic model:
// JobSatisfaction with a negative weight, OverTime_Yes with a positive
// one.
func writeTestArtifacts(t *testing.T, dir string, withScaler bool) {
	t.Helper()
	writeArtifact(t, dir, featureNamesFile, []string{AttrJobSatisfaction, "OverTime_Yes"})
	writeArtifact(t, dir, modelFile, logisticModelFile{
		ModelType:    "Logistic Regression",
		Coefficients: []float64{-0.8, 1.2},
		Intercept:    0.5,
	})
	writeArtifact(t, dir, metadataFile, Metadata{ModelType: "Logistic Regression", TestAccuracy: 0.87, ROCAUC: 0.82})
	if withScaler {
		writeArtifact(t, dir, scalerFile, standardScalerFile{
			Mean:  []float64{2.5, 0.3},
			Scale: []float64{1.1, 0.45},
		})
	}
}

func TestNewEngineFallsBackWhenArtifactsMissing(t *testing.T) {
	engine := NewEngine(t.TempDir())

	assert.Equal(t, "fallback", engine.Mode())
	assert.Equal(t, DefaultMetadata(), engine.Metadata())
}

func TestNewEngineFallsBackOnCorruptArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, featureNamesFile), []byte("{not json"), 0644))

	engine := NewEngine(dir)

	assert.Equal(t, "fallback", engine.Mode())
}

func TestNewEngineModelMode(t *testing.T) {
	dir := t.TempDir()
	writeTestArtifacts(t, dir, true)

	engine := NewEngine(dir)

	assert.Equal(t, "model", engine.Mode())
	assert.Equal(t, "Logistic Regression", engine.Metadata().ModelType)
	assert.Equal(t, 0.87, engine.Metadata().TestAccuracy)
}

func TestFallbackScore(t *testing.T) {
	engine := NewEngineWithArtifacts(nil)

	tests := []struct {
		name         string
		attrs        AttributeSet
		expectedRisk float64
		willLeave    bool
	}{
		{
			name: "worst case clamps below ceiling",
			attrs: AttributeSet{
				AttrOverTime:        1,
				AttrJobSatisfaction: 1,
				AttrWorkLifeBalance: 1,
			},
			// 0.3 + 0.2 + 0.3*(3/4) + 0.2*(3/4)
			expectedRisk: 0.875,
			willLeave:    true,
		},
		{
			name: "content employee",
			attrs: AttributeSet{
				AttrOverTime:        0,
				AttrJobSatisfaction: 4,
				AttrWorkLifeBalance: 4,
			},
			expectedRisk: 0.3,
			willLeave:    false,
		},
		{
			name:  "missing attributes use neutral defaults",
			attrs: AttributeSet{},
			// 0.3 + 0 + 0.3*(1/4) + 0.2*(1/4)
			expectedRisk: 0.425,
			willLeave:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := engine.Score(tt.attrs)
			require.NoError(t, err)
			require.NotNil(t, pred)

			assert.InDelta(t, tt.expectedRisk, pred.LeaveProbability, 1e-9)
			assert.Equal(t, tt.willLeave, pred.WillLeave)
		})
	}
}

func TestFallbackRiskStaysClamped(t *testing.T) {
	engine := NewEngineWithArtifacts(nil)

	// Extreme coded values must never push the risk out of bounds.
	extremes := []AttributeSet{
		{AttrOverTime: 50, AttrJobSatisfaction: -100, AttrWorkLifeBalance: -100},
		{AttrOverTime: -50, AttrJobSatisfaction: 100, AttrWorkLifeBalance: 100},
	}

	for _, attrs := range extremes {
		pred, err := engine.Score(attrs)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, pred.LeaveProbability, 0.05)
		assert.LessOrEqual(t, pred.LeaveProbability, 0.95)
	}
}

func TestProbabilityPairNormalization(t *testing.T) {
	dir := t.TempDir()
	writeTestArtifacts(t, dir, true)

	engines := map[string]*Engine{
		"model":    NewEngine(dir),
		"fallback": NewEngineWithArtifacts(nil),
	}

	attrSets := []AttributeSet{
		{},
		{AttrOverTime: 1, AttrJobSatisfaction: 1, AttrWorkLifeBalance: 1},
		{AttrOverTime: 0, AttrJobSatisfaction: 4, AttrWorkLifeBalance: 4},
		{AttrJobSatisfaction: 2},
	}

	for mode, engine := range engines {
		for _, attrs := range attrSets {
			pred, err := engine.Score(attrs)
			require.NoError(t, err, "mode %s", mode)
			require.NotNil(t, pred)

			assert.InDelta(t, 1.0, pred.StayProbability+pred.LeaveProbability, 1e-9)
			assert.GreaterOrEqual(t, pred.StayProbability, 0.0)
			assert.LessOrEqual(t, pred.StayProbability, 1.0)
			assert.GreaterOrEqual(t, pred.LeaveProbability, 0.0)
			assert.LessOrEqual(t, pred.LeaveProbability, 1.0)
		}
	}
}

func TestModelModeUsesScaler(t *testing.T) {
	withScaler := t.TempDir()
	writeTestArtifacts(t, withScaler, true)
	withoutScaler := t.TempDir()
	writeTestArtifacts(t, withoutScaler, false)

	attrs := AttributeSet{AttrJobSatisfaction: 1, AttrOverTime: 1}

	scaled, err := NewEngine(withScaler).Score(attrs)
	require.NoError(t, err)
	raw, err := NewEngine(withoutScaler).Score(attrs)
	require.NoError(t, err)

	// Same inputs, different probabilities: the scaler must be in the path.
	assert.NotEqual(t, raw.LeaveProbability, scaled.LeaveProbability)
}

type panickyClassifier struct{}

func (panickyClassifier) Predict([]float64) (int, error) { panic("backend exploded") }
func (panickyClassifier) PredictProbability([]float64) ([2]float64, error) {
	panic("backend exploded")
}

type failingScaler struct{}

func (failingScaler) Transform([]float64) ([]float64, error) {
	return nil, errors.New("dimension mismatch")
}

func TestScoreRecoversFromBackendPanic(t *testing.T) {
	engine := NewEngineWithArtifacts(&Artifacts{
		Model:        panickyClassifier{},
		FeatureNames: []string{AttrAge},
		Metadata:     DefaultMetadata(),
	})

	pred, err := engine.Score(AttributeSet{AttrAge: 30})

	assert.Error(t, err)
	assert.Nil(t, pred)
}

func TestScoreSurfacesScalerFailure(t *testing.T) {
	engine := NewEngineWithArtifacts(&Artifacts{
		Model:        panickyClassifier{},
		Scaler:       failingScaler{},
		FeatureNames: []string{AttrAge},
		Metadata:     DefaultMetadata(),
	})

	pred, err := engine.Score(AttributeSet{AttrAge: 30})

	assert.Error(t, err)
	assert.Nil(t, pred)
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		probability float64
		expected    string
	}{
		{probability: 0.85, expected: "high"},
		{probability: 0.71, expected: "high"},
		{probability: 0.7, expected: "medium"},
		{probability: 0.45, expected: "medium"},
		{probability: 0.3, expected: "low"},
		{probability: 0.1, expected: "low"},
	}

	for _, tt := range tests {
		pred := &Prediction{LeaveProbability: tt.probability}
		assert.Equal(t, tt.expected, pred.RiskLevel(), "probability %v", tt.probability)
	}
}

func TestLoadArtifactsRejectsDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, featureNamesFile, []string{AttrAge, AttrMonthlyIncome, AttrJobSatisfaction})
	writeArtifact(t, dir, modelFile, logisticModelFile{
		ModelType:    "Logistic Regression",
		Coefficients: []float64{0.1}, // too short
		Intercept:    0,
	})
	writeArtifact(t, dir, metadataFile, DefaultMetadata())

	arts, err := LoadArtifacts(dir)

	assert.Error(t, err)
	assert.Nil(t, arts)
}
