package assessment

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financial-twin/internal/model"
	"financial-twin/internal/scoring"
	"financial-twin/internal/simulation"
)

const serviceArtifact = `
name: loan_risk_model
version: "0.1.0"
intercept: -1.5
features:
  - name: debt_to_income_ratio
    weight: 2.0
    mean: 0.3
  - name: buffer_months
    weight: -0.4
    mean: 3.0
  - name: cashflow_margin
    weight: -1.5
    mean: 0.2
  - name: has_freelance_income
    weight: 0.4
    mean: 0.4
`

func testService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(serviceArtifact), 0o644))

	m := scoring.NewModel()
	require.NoError(t, m.Load(path))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewService(m, simulation.DefaultParams(), logger)
}

func testProfile() *model.Profile {
	return &model.Profile{
		HouseholdSize:  2,
		MaritalStatus:  model.MaritalMarried,
		EmploymentType: model.EmploymentSalaried,
		CurrentBalance: 5000,
		IncomeStreams: []model.IncomeStream{
			{Type: "salary", Amount: 2500, Reliability: model.ReliabilityHigh, GrowthRate: 0.02},
		},
		Expenses: []model.Expense{
			{Category: "housing", MonthlyBaseline: 800, Volatility: 0},
			{Category: "food", MonthlyBaseline: 500, Volatility: 0.08},
		},
		LoanAmount:         15000,
		LoanDurationMonths: 36,
		LoanInterestRate:   9.5,
	}
}

func TestAssess(t *testing.T) {
	svc := testService(t)
	result, err := svc.Assess(testProfile())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.RiskScore, 0.0)
	assert.LessOrEqual(t, result.RiskScore, 100.0)
	assert.Equal(t, Categorize(result.RiskScore), result.RiskCategory)
	assert.Equal(t, Recommend(result.RiskScore), result.Recommendation)

	assert.Equal(t, 2500.0, result.MonthlyIncome)
	assert.Equal(t, 1300.0, result.MonthlyExpenses)
	assert.InDelta(t, 480.49, result.MonthlyLoanPayment, 0.01)

	assert.Len(t, result.RiskBreakdown, 5)
	for _, entry := range result.RiskBreakdown {
		if entry.Category == "Debt Burden" {
			// DTI just above 0.19 stays in the best band.
			assert.Equal(t, 100.0, entry.Score)
			assert.Equal(t, StatusGood, entry.Status)
		}
	}
	assert.Len(t, result.CashflowProjection, 25)
	assert.Equal(t, 0, result.CashflowProjection[0].Month)

	// A comfortable salaried profile never defaults on the median path.
	assert.False(t, result.MedianDefault)
	assert.Equal(t, 0.0, result.DefaultProbability12Months)
	assert.Equal(t, 0.0, result.DefaultProbability24Months)
}

func TestAssessReproducible(t *testing.T) {
	svc := testService(t)
	a, err := svc.Assess(testProfile())
	require.NoError(t, err)
	b, err := svc.Assess(testProfile())
	require.NoError(t, err)

	assert.Equal(t, a.RiskScore, b.RiskScore)
	assert.Equal(t, a.CashflowProjection, b.CashflowProjection)
}

func TestAssessSurfacesSimulationNotes(t *testing.T) {
	svc := testService(t)
	p := testProfile()
	p.FutureIncomes = []model.FutureIncome{
		{Type: "tax_refund", ExpectedDate: "springtime", ExpectedAmount: 400, Confidence: model.ConfidenceLow},
	}

	result, err := svc.Assess(p)
	require.NoError(t, err)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[len(result.Warnings)-1], "tax_refund")
}

func TestAssessInvalidProfile(t *testing.T) {
	svc := testService(t)
	p := testProfile()
	p.IncomeStreams = nil

	_, err := svc.Assess(p)
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = svc.QuickScore(p)
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = svc.Explain(p, 10)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestAssessModelNotLoaded(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewService(scoring.NewModel(), simulation.DefaultParams(), logger)

	_, err := svc.Assess(testProfile())
	assert.ErrorIs(t, err, scoring.ErrModelNotLoaded)

	_, err = svc.QuickScore(testProfile())
	assert.ErrorIs(t, err, scoring.ErrModelNotLoaded)
}

func TestQuickScore(t *testing.T) {
	svc := testService(t)
	result, err := svc.QuickScore(testProfile())
	require.NoError(t, err)

	assert.InDelta(t, result.RiskScore/100, result.DefaultProbability, 1e-9)
	assert.Equal(t, Categorize(result.RiskScore), result.RiskCategory)
}

func TestExplain(t *testing.T) {
	svc := testService(t)
	result, err := svc.Explain(testProfile(), 10)
	require.NoError(t, err)

	// Every artifact feature lands in one of the two lists.
	assert.Equal(t, 4, len(result.TopRiskDrivers)+len(result.TopProtectiveFactors))
	assert.Contains(t, result.FeatureValues, "monthly_income")
	assert.Contains(t, result.FeatureValues, "buffer_months")
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "low", Categorize(0))
	assert.Equal(t, "low", Categorize(24.9))
	assert.Equal(t, "medium", Categorize(25))
	assert.Equal(t, "medium", Categorize(49.9))
	assert.Equal(t, "high", Categorize(50))
	assert.Equal(t, "high", Categorize(74.9))
	assert.Equal(t, "very_high", Categorize(75))
	assert.Equal(t, "very_high", Categorize(100))
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, "approve", Recommend(0))
	assert.Equal(t, "approve", Recommend(29.9))
	assert.Equal(t, "review", Recommend(30))
	assert.Equal(t, "review", Recommend(59.9))
	assert.Equal(t, "reject", Recommend(60))
	assert.Equal(t, "reject", Recommend(100))
}
