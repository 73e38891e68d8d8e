package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArtifact = `
name: loan_risk_model
version: "0.1.0"
intercept: -1.0
features:
  - name: debt_to_income_ratio
    weight: 2.0
    mean: 0.3
  - name: buffer_months
    weight: -0.5
    mean: 3.0
  - name: has_freelance_income
    weight: 0.4
    mean: 0.4
`

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func loadedModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	require.NoError(t, m.Load(writeArtifact(t, testArtifact)))
	return m
}

func TestModelLoad(t *testing.T) {
	m := loadedModel(t)
	assert.True(t, m.Loaded())
	assert.Equal(t, "loan_risk_model", m.Name())
	assert.Equal(t, []string{"debt_to_income_ratio", "buffer_months", "has_freelance_income"}, m.FeatureNames())
}

func TestModelLoadErrors(t *testing.T) {
	m := NewModel()

	require.Error(t, m.Load(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.False(t, m.Loaded())

	require.Error(t, m.Load(writeArtifact(t, "name: empty\nfeatures: []\n")))

	dup := `
name: dup
features:
  - name: x
    weight: 1
  - name: x
    weight: 2
`
	err := m.Load(writeArtifact(t, dup))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestPredict(t *testing.T) {
	m := loadedModel(t)
	feats := map[string]float64{
		"debt_to_income_ratio": 0.5,
		"buffer_months":        2.0,
		"has_freelance_income": 1.0,
	}

	score, probs, err := m.Predict(feats)
	require.NoError(t, err)

	z := -1.0 + 2.0*0.5 - 0.5*2.0 + 0.4*1.0
	want := 1 / (1 + math.Exp(-z))
	assert.InDelta(t, want*100, score, 1e-9)
	assert.InDelta(t, want, probs[1], 1e-9)
	assert.InDelta(t, 1-want, probs[0], 1e-9)
}

func TestPredictNotLoaded(t *testing.T) {
	m := NewModel()
	_, _, err := m.Predict(map[string]float64{})
	assert.ErrorIs(t, err, ErrModelNotLoaded)

	_, _, err = m.Contributions(map[string]float64{}, 5)
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestPredictMissingFeature(t *testing.T) {
	m := loadedModel(t)
	_, _, err := m.Predict(map[string]float64{"debt_to_income_ratio": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer_months")
}

func TestContributions(t *testing.T) {
	m := loadedModel(t)
	feats := map[string]float64{
		"debt_to_income_ratio": 0.8, // +2.0*(0.8-0.3) = +1.0
		"buffer_months":        1.0, // -0.5*(1.0-3.0) = +1.0
		"has_freelance_income": 0.0, // +0.4*(0.0-0.4) = -0.16
	}

	drivers, protective, err := m.Contributions(feats, 5)
	require.NoError(t, err)

	require.Len(t, drivers, 2)
	require.Len(t, protective, 1)

	// Equal magnitudes keep artifact order (stable sort).
	assert.Equal(t, "debt_to_income_ratio", drivers[0].FeatureName)
	assert.InDelta(t, 1.0, drivers[0].ContributionValue, 1e-9)
	assert.Equal(t, ImpactIncreasesRisk, drivers[0].Impact)
	assert.Equal(t, "buffer_months", drivers[1].FeatureName)

	assert.Equal(t, "has_freelance_income", protective[0].FeatureName)
	assert.InDelta(t, -0.16, protective[0].ContributionValue, 1e-9)
	assert.Equal(t, ImpactDecreasesRisk, protective[0].Impact)
}

func TestContributionsTruncation(t *testing.T) {
	m := loadedModel(t)
	feats := map[string]float64{
		"debt_to_income_ratio": 0.8,
		"buffer_months":        1.0,
		"has_freelance_income": 1.0,
	}
	drivers, protective, err := m.Contributions(feats, 1)
	require.NoError(t, err)
	assert.Len(t, drivers, 1)
	assert.Empty(t, protective)
}
