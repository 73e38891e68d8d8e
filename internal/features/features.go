package features

import (
	"errors"
	"math"

	"financial-twin/internal/model"
)

// Sentinel values used when a ratio's denominator is zero. Forcing ratios to
// an extreme rather than erroring keeps the assessment total while steering
// those dimensions into the worst risk band.
const (
	ZeroIncomeRatio  = 999
	ZeroIncomeMargin = -999
)

// Feature name constants for the fields the assessment layer reads back.
const (
	MonthlyIncome          = "monthly_income"
	MonthlyExpenses        = "monthly_expenses"
	LoanPayment            = "loan_payment"
	DebtToIncomeRatio      = "debt_to_income_ratio"
	NetMonthlyCashflow     = "net_monthly_cashflow"
	CashflowMargin         = "cashflow_margin"
	BufferMonths           = "buffer_months"
	AvgIncomeReliability   = "avg_income_reliability"
	IncomeVolatility       = "income_volatility"
	AvgIncomeGrowthRate    = "avg_income_growth_rate"
	HasFreelanceIncome     = "has_freelance_income"
	HasMultipleStreams     = "has_multiple_income_streams"
	ExpenseVolatility      = "expense_volatility"
	MaxSeasonalMultiplier  = "max_seasonal_multiplier"
	LoanDurationMonthsName = "loan_duration_months"
)

// reliabilityWeight maps reliability to the numeric weight used in features
// and sub-scores. Distinct from the simulation noise bounds.
var reliabilityWeight = map[model.Reliability]float64{
	model.ReliabilityHigh:   1.0,
	model.ReliabilityMedium: 0.6,
	model.ReliabilityLow:    0.3,
}

var confidenceWeight = map[model.Confidence]float64{
	model.ConfidenceHigh:   1.0,
	model.ConfidenceMedium: 0.6,
	model.ConfidenceLow:    0.3,
}

// Extract computes the flat feature vector for a profile: derived ratios,
// volatilities, and categorical encodings. It is a pure function of the
// profile; the same input always yields the same map.
func Extract(p *model.Profile) (map[string]float64, error) {
	if p == nil {
		return nil, errors.New("profile is nil")
	}

	monthlyIncome := p.MonthlyIncome()
	monthlyExpenses := p.MonthlyExpenses()
	monthlyObligations := p.MonthlyObligations()
	loanPayment := p.LoanPayment()

	hasFreelance := 0.0
	for _, s := range p.IncomeStreams {
		if s.Type == "freelance" {
			hasFreelance = 1
			break
		}
	}
	hasMultiple := 0.0
	if len(p.IncomeStreams) > 1 {
		hasMultiple = 1
	}

	avgReliability := 0.0
	avgGrowth := 0.0
	for _, s := range p.IncomeStreams {
		avgReliability += reliabilityWeight[s.Reliability]
		avgGrowth += s.GrowthRate
	}
	avgReliability /= float64(len(p.IncomeStreams))
	avgGrowth /= float64(len(p.IncomeStreams))

	// Coefficient of variation of stream amounts; a single stream has none.
	incomeVolatility := 0.0
	if len(p.IncomeStreams) > 1 && monthlyIncome > 0 {
		mean := monthlyIncome / float64(len(p.IncomeStreams))
		variance := 0.0
		for _, s := range p.IncomeStreams {
			d := s.Amount - mean
			variance += d * d
		}
		variance /= float64(len(p.IncomeStreams))
		incomeVolatility = math.Sqrt(variance) / monthlyIncome
	}

	fixedExpenses := 0.0
	variableExpenses := 0.0
	expenseVolatility := 0.0
	maxSeasonal := 1.0
	for _, e := range p.Expenses {
		switch e.Category {
		case "fixed":
			fixedExpenses += e.MonthlyBaseline
		case "variable":
			variableExpenses += e.MonthlyBaseline
		}
		expenseVolatility += e.Volatility
		for _, mult := range e.SeasonalMultipliers {
			if mult > maxSeasonal {
				maxSeasonal = mult
			}
		}
	}
	expenseVolatility /= float64(len(p.Expenses))

	totalEventExpense := 0.0
	maxEventExpense := 0.0
	for _, ev := range p.LifeEvents {
		totalEventExpense += ev.ExpenseImpact
		if ev.ExpenseImpact > maxEventExpense {
			maxEventExpense = ev.ExpenseImpact
		}
	}

	hasFutureIncome := 0.0
	futureConfidence := 0.0
	if len(p.FutureIncomes) > 0 {
		hasFutureIncome = 1
		for _, f := range p.FutureIncomes {
			futureConfidence += confidenceWeight[f.Confidence]
		}
		futureConfidence /= float64(len(p.FutureIncomes))
	}

	totalFixedObligations := monthlyObligations + loanPayment + fixedExpenses
	debtToIncome := float64(ZeroIncomeRatio)
	fixedExpenseRatio := float64(ZeroIncomeRatio)
	expenseToIncome := float64(ZeroIncomeRatio)
	loanToIncome := float64(ZeroIncomeRatio)
	loanPaymentToIncome := float64(ZeroIncomeRatio)
	cashflowMargin := float64(ZeroIncomeMargin)

	totalOutflow := monthlyExpenses + monthlyObligations + loanPayment
	netCashflow := monthlyIncome - totalOutflow

	if monthlyIncome > 0 {
		debtToIncome = (monthlyObligations + loanPayment) / monthlyIncome
		fixedExpenseRatio = totalFixedObligations / monthlyIncome
		expenseToIncome = totalOutflow / monthlyIncome
		loanToIncome = p.LoanAmount / (monthlyIncome * 12)
		loanPaymentToIncome = loanPayment / monthlyIncome
		cashflowMargin = netCashflow / monthlyIncome
	}

	bufferMonths := 0.0
	if totalOutflow > 0 {
		bufferMonths = p.CurrentBalance / totalOutflow
	}

	dependentsPerStream := float64(p.Dependents) / float64(len(p.IncomeStreams))
	incomePerMember := 0.0
	if p.HouseholdSize > 0 {
		incomePerMember = monthlyIncome / float64(p.HouseholdSize)
	}

	return map[string]float64{
		MonthlyIncome:        monthlyIncome,
		HasFreelanceIncome:   hasFreelance,
		HasMultipleStreams:   hasMultiple,
		AvgIncomeReliability: avgReliability,
		IncomeVolatility:     incomeVolatility,
		AvgIncomeGrowthRate:  avgGrowth,

		MonthlyExpenses:       monthlyExpenses,
		"fixed_expenses":      fixedExpenses,
		"variable_expenses":   variableExpenses,
		ExpenseVolatility:     expenseVolatility,
		MaxSeasonalMultiplier: maxSeasonal,

		"total_life_event_expense": totalEventExpense,
		"max_single_event_expense": maxEventExpense,

		"has_future_income":        hasFutureIncome,
		"future_income_confidence": futureConfidence,

		"monthly_obligations": monthlyObligations,
		"num_obligations":     float64(len(p.Obligations)),

		DebtToIncomeRatio:         debtToIncome,
		"fixed_expense_ratio":     fixedExpenseRatio,
		"expense_to_income_ratio": expenseToIncome,
		BufferMonths:              bufferMonths,
		NetMonthlyCashflow:        netCashflow,
		CashflowMargin:            cashflowMargin,

		"household_size":               float64(p.HouseholdSize),
		"dependents":                   float64(p.Dependents),
		"dependents_per_income_stream": dependentsPerStream,
		"income_per_household_member":  incomePerMember,

		"loan_amount":            p.LoanAmount,
		LoanDurationMonthsName:   float64(p.LoanDurationMonths),
		"loan_interest_rate":     p.LoanInterestRate,
		LoanPayment:              loanPayment,
		"loan_to_income_ratio":   loanToIncome,
		"loan_payment_to_income": loanPaymentToIncome,

		"is_salaried":       boolFeature(p.EmploymentType == model.EmploymentSalaried),
		"is_freelancer":     boolFeature(p.EmploymentType == model.EmploymentFreelancer),
		"is_business_owner": boolFeature(p.EmploymentType == model.EmploymentBusinessOwner),
		"is_married":        boolFeature(p.MaritalStatus == model.MaritalMarried),
	}, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
