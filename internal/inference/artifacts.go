package inference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Classifier is the capability the engine needs from a trained binary
// model. Implementations return the label (1 = leave) and the class
// probability pair (stay, leave).
type Classifier interface {
	Predict(features []float64) (int, error)
	PredictProbability(features []float64) ([2]float64, error)
}

// Scaler is a fitted transform applied to the feature vector before
// classification.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Metadata describes the trained model's reported performance.
type Metadata struct {
	ModelType    string  `json:"model_type"`
	TestAccuracy float64 `json:"test_accuracy"`
	ROCAUC       float64 `json:"roc_auc"`
}

// DefaultMetadata is reported when no trained artifacts are available.
func DefaultMetadata() Metadata {
	return Metadata{ModelType: "Demo", TestAccuracy: 0.87, ROCAUC: 0.82}
}

// Artifacts bundles everything a model-mode engine needs: the classifier,
// an optional scaler, the ordered feature schema and the training
// metadata. Loaded once at process start, read-only afterwards.
type Artifacts struct {
	Model        Classifier
	Scaler       Scaler // nil when no scaler was fitted
	FeatureNames []string
	Metadata     Metadata
}

const (
	featureNamesFile = "feature_names.json"
	modelFile        = "model.json"
	scalerFile       = "scaler.json"
	metadataFile     = "metadata.json"
)

// LoadArtifacts reads the serialized model artifacts from dir. The scaler
// is optional; every other file is required and any failure makes the
// whole load fail so the engine can switch to fallback mode.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var names []string
	if err := readJSON(filepath.Join(dir, featureNamesFile), &names); err != nil {
		return nil, fmt.Errorf("feature schema: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("feature schema in %s is empty", dir)
	}

	model, err := loadLogisticModel(filepath.Join(dir, modelFile), len(names))
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	var meta Metadata
	if err := readJSON(filepath.Join(dir, metadataFile), &meta); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	arts := &Artifacts{
		Model:        model,
		FeatureNames: names,
		Metadata:     meta,
	}

	scalerPath := filepath.Join(dir, scalerFile)
	if _, err := os.Stat(scalerPath); err == nil {
		scaler, err := loadStandardScaler(scalerPath, len(names))
		if err != nil {
			return nil, fmt.Errorf("scaler: %w", err)
		}
		arts.Scaler = scaler
	}

	return arts, nil
}

func readJSON(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
