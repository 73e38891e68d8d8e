package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *Profile {
	return &Profile{
		HouseholdSize:  2,
		MaritalStatus:  MaritalMarried,
		Dependents:     0,
		Region:         "Tunis",
		EmploymentType: EmploymentSalaried,
		CurrentBalance: 5000,
		IncomeStreams: []IncomeStream{
			{Type: "salary", Amount: 2500, Frequency: "monthly", Reliability: ReliabilityHigh, GrowthRate: 0.02},
		},
		Expenses: []Expense{
			{Category: "housing", MonthlyBaseline: 800, Volatility: 0},
			{Category: "food", MonthlyBaseline: 500, Volatility: 0.08},
		},
		LoanAmount:         15000,
		LoanDurationMonths: 36,
		LoanInterestRate:   9.5,
	}
}

func TestProfileValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	cases := []struct {
		name    string
		mutate  func(*Profile)
		wantErr string
	}{
		{"nil reliability", func(p *Profile) { p.IncomeStreams[0].Reliability = "" }, "reliability"},
		{"unknown reliability", func(p *Profile) { p.IncomeStreams[0].Reliability = "sometimes" }, "reliability"},
		{"no income streams", func(p *Profile) { p.IncomeStreams = nil }, "income stream"},
		{"negative income", func(p *Profile) { p.IncomeStreams[0].Amount = -100 }, "amount"},
		{"no expenses", func(p *Profile) { p.Expenses = nil }, "expense"},
		{"volatility above one", func(p *Profile) { p.Expenses[0].Volatility = 1.5 }, "volatility"},
		{"seasonal month out of range", func(p *Profile) {
			p.Expenses[0].SeasonalMultipliers = map[int]float64{13: 1.2}
		}, "seasonal"},
		{"bad marital status", func(p *Profile) { p.MaritalStatus = "complicated" }, "marital_status"},
		{"bad employment type", func(p *Profile) { p.EmploymentType = "retired" }, "employment_type"},
		{"zero household", func(p *Profile) { p.HouseholdSize = 0 }, "household_size"},
		{"zero loan", func(p *Profile) { p.LoanAmount = 0 }, "loan_amount"},
		{"loan too long", func(p *Profile) { p.LoanDurationMonths = 61 }, "loan_duration_months"},
		{"zero interest", func(p *Profile) { p.LoanInterestRate = 0 }, "loan_interest_rate"},
		{"interest above cap", func(p *Profile) { p.LoanInterestRate = 25 }, "loan_interest_rate"},
		{"bad future income confidence", func(p *Profile) {
			p.FutureIncomes = []FutureIncome{{Type: "bonus", ExpectedDate: "2026-06-01", ExpectedAmount: 500, Confidence: "maybe"}}
		}, "confidence"},
		{"zero obligation months", func(p *Profile) {
			p.Obligations = []Obligation{{Type: "car_loan", MonthlyAmount: 300, RemainingMonths: 0}}
		}, "remaining_months"},
		{"life event month out of range", func(p *Profile) {
			p.LifeEvents = []LifeEvent{{Name: "x", StartMonth: 0, DurationMonths: 1, ExpenseImpact: 100}}
		}, "start_month"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestProfileMonthlyAggregates(t *testing.T) {
	p := validProfile()
	p.IncomeStreams = append(p.IncomeStreams, IncomeStream{
		Type: "freelance", Amount: 600, Reliability: ReliabilityLow,
	})
	p.Obligations = []Obligation{
		{Type: "car_loan", MonthlyAmount: 320, RemainingMonths: 10},
		{Type: "family_support", MonthlyAmount: 100, RemainingMonths: 24},
	}

	assert.Equal(t, 3100.0, p.MonthlyIncome())
	assert.Equal(t, 1300.0, p.MonthlyExpenses())
	assert.Equal(t, 420.0, p.MonthlyObligations())
	assert.InDelta(t, 480.49, p.LoanPayment(), 0.01)
}

func TestExpenseMultiplier(t *testing.T) {
	e := Expense{
		Category:        "food",
		MonthlyBaseline: 500,
		SeasonalMultipliers: map[int]float64{
			7: 1.3,
			9: 2.0,
		},
	}
	assert.Equal(t, 1.3, e.Multiplier(7))
	assert.Equal(t, 2.0, e.Multiplier(9))
	assert.Equal(t, 1.0, e.Multiplier(1))

	bare := Expense{Category: "rent", MonthlyBaseline: 800}
	assert.Equal(t, 1.0, bare.Multiplier(7))
}
