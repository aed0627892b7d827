package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/pipeline"
)

const (
	ArtifactVersion   = "1"
	TypeLogisticModel = "logistic_regression"
)

// Artifact bundles the fitted transformer state with the classifier weights
// so inference always encodes rows exactly as they were encoded in training.
type Artifact struct {
	ModelType    string             `json:"model_type"`
	Version      string             `json:"version"`
	Features     []string           `json:"features"`
	Transformer  pipeline.State     `json:"transformer"`
	Coefficients []float64          `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
	Threshold    float64            `json:"threshold"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

// NewArtifact captures a fitted transformer and trained model.
func NewArtifact(ct *pipeline.ColumnTransformer, m *LogisticRegression, metrics map[string]float64) (*Artifact, error) {
	state, err := ct.State()
	if err != nil {
		return nil, err
	}
	if ct.Width() != m.NumFeatures() {
		return nil, fmt.Errorf("%w: transformer width %d, model width %d", ErrModelArtifact, ct.Width(), m.NumFeatures())
	}
	return &Artifact{
		ModelType:    TypeLogisticModel,
		Version:      ArtifactVersion,
		Features:     ct.FeatureNames(),
		Transformer:  state,
		Coefficients: slices.Clone(m.W),
		Intercept:    m.B,
		Threshold:    m.Threshold,
		Metrics:      metrics,
	}, nil
}

// Validate checks the header fields of the artifact.
func (a *Artifact) Validate() error {
	if a.ModelType != TypeLogisticModel {
		return fmt.Errorf("%w: unsupported model_type %q", ErrModelArtifact, a.ModelType)
	}
	if a.Version != ArtifactVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrModelArtifact, a.Version)
	}
	if len(a.Coefficients) == 0 {
		return fmt.Errorf("%w: no coefficients", ErrModelArtifact)
	}
	if a.Threshold <= 0 || a.Threshold >= 1 {
		return fmt.Errorf("%w: threshold %v outside (0, 1)", ErrModelArtifact, a.Threshold)
	}
	return nil
}

// Open restores the transformer and classifier held by the artifact and
// checks that their widths and feature layouts agree.
func (a *Artifact) Open() (*pipeline.ColumnTransformer, *LogisticRegression, error) {
	if err := a.Validate(); err != nil {
		return nil, nil, err
	}
	ct, err := pipeline.Restore(a.Transformer)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrModelArtifact, err)
	}
	if ct.Width() != len(a.Coefficients) {
		return nil, nil, fmt.Errorf("%w: transformer width %d, %d coefficients", ErrModelArtifact, ct.Width(), len(a.Coefficients))
	}
	if !slices.Equal(ct.FeatureNames(), a.Features) {
		return nil, nil, fmt.Errorf("%w: feature layout %q does not match transformer %q", ErrModelArtifact, a.Features, ct.FeatureNames())
	}
	m := NewLogisticRegression(len(a.Coefficients), WithThreshold(a.Threshold))
	copy(m.W, a.Coefficients)
	m.B = a.Intercept
	return ct, m, nil
}

// SaveArtifact writes a as indented JSON, creating parent directories.
func SaveArtifact(path string, a *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// LoadArtifact reads the artifact at path and opens it.
func LoadArtifact(path string) (*pipeline.ColumnTransformer, *LogisticRegression, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrModelArtifact, err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, nil, fmt.Errorf("%w: decode %s: %v", ErrModelArtifact, path, err)
	}
	return a.Open()
}
