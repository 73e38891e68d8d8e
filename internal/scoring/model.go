package scoring

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrModelNotLoaded is returned by prediction calls before Load succeeds.
// There is no sensible risk score without the model, so callers treat this
// as a service-unavailable condition.
var ErrModelNotLoaded = errors.New("risk model not loaded")

const (
	ImpactIncreasesRisk = "increases_risk"
	ImpactDecreasesRisk = "decreases_risk"
)

// Contribution is one feature's share of the prediction, for explanations.
type Contribution struct {
	FeatureName       string  `json:"feature_name"`
	FeatureValue      float64 `json:"feature_value"`
	ContributionValue float64 `json:"contribution_value"`
	Impact            string  `json:"impact"`
}

// modelFeature is one coefficient of the serialized model: its weight and the
// training-set mean the attribution baseline is measured against.
type modelFeature struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
	Mean   float64 `yaml:"mean"`
}

type modelArtifact struct {
	Name      string         `yaml:"name"`
	Version   string         `yaml:"version"`
	Intercept float64        `yaml:"intercept"`
	Features  []modelFeature `yaml:"features"`
}

// Model is the default-risk classifier: a logistic regression whose
// coefficients are loaded from a YAML artifact. The artifact fixes the
// feature order and the per-feature baseline used for attributions.
type Model struct {
	artifact modelArtifact
	loaded   bool
}

func NewModel() *Model { return &Model{} }

// Load reads and validates the model artifact.
func (m *Model) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model artifact: %w", err)
	}
	var art modelArtifact
	if err := yaml.Unmarshal(raw, &art); err != nil {
		return fmt.Errorf("parse model artifact: %w", err)
	}
	if len(art.Features) == 0 {
		return fmt.Errorf("model artifact %s has no features", path)
	}
	seen := make(map[string]bool, len(art.Features))
	for _, f := range art.Features {
		if f.Name == "" {
			return fmt.Errorf("model artifact %s has a feature with no name", path)
		}
		if seen[f.Name] {
			return fmt.Errorf("model artifact %s lists feature %q twice", path, f.Name)
		}
		seen[f.Name] = true
	}
	m.artifact = art
	m.loaded = true
	return nil
}

// Loaded reports whether the model is ready to predict.
func (m *Model) Loaded() bool { return m.loaded }

// Name is the artifact's model name, empty before Load.
func (m *Model) Name() string { return m.artifact.Name }

// FeatureNames lists the features the model consumes, in artifact order.
func (m *Model) FeatureNames() []string {
	names := make([]string, len(m.artifact.Features))
	for i, f := range m.artifact.Features {
		names[i] = f.Name
	}
	return names
}

// Predict maps a feature vector to a risk score in [0,100] and the class
// probabilities [P(repay), P(default)]. Every feature the artifact names
// must be present in the input.
func (m *Model) Predict(feats map[string]float64) (float64, [2]float64, error) {
	if !m.loaded {
		return 0, [2]float64{}, ErrModelNotLoaded
	}
	z := m.artifact.Intercept
	for _, f := range m.artifact.Features {
		v, ok := feats[f.Name]
		if !ok {
			return 0, [2]float64{}, fmt.Errorf("feature %q required by the model is missing", f.Name)
		}
		z += f.Weight * v
	}
	pDefault := 1 / (1 + math.Exp(-z))
	return pDefault * 100, [2]float64{1 - pDefault, pDefault}, nil
}

// Contributions ranks per-feature attributions weight*(value-mean), which are
// the exact Shapley values of a linear model. Results are sorted by absolute
// contribution descending, split into risk drivers (positive) and protective
// factors (negative), each truncated to topN.
func (m *Model) Contributions(feats map[string]float64, topN int) (drivers, protective []Contribution, err error) {
	if !m.loaded {
		return nil, nil, ErrModelNotLoaded
	}
	all := make([]Contribution, 0, len(m.artifact.Features))
	for _, f := range m.artifact.Features {
		v, ok := feats[f.Name]
		if !ok {
			return nil, nil, fmt.Errorf("feature %q required by the model is missing", f.Name)
		}
		contrib := f.Weight * (v - f.Mean)
		impact := ImpactDecreasesRisk
		if contrib > 0 {
			impact = ImpactIncreasesRisk
		}
		all = append(all, Contribution{
			FeatureName:       f.Name,
			FeatureValue:      v,
			ContributionValue: contrib,
			Impact:            impact,
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].ContributionValue) > math.Abs(all[j].ContributionValue)
	})

	drivers = make([]Contribution, 0, topN)
	protective = make([]Contribution, 0, topN)
	for _, c := range all {
		if c.ContributionValue > 0 && len(drivers) < topN {
			drivers = append(drivers, c)
		}
		if c.ContributionValue < 0 && len(protective) < topN {
			protective = append(protective, c)
		}
	}
	return drivers, protective, nil
}
