package assessment

import (
	"fmt"

	"financial-twin/internal/features"
	"financial-twin/internal/simulation"
)

// Warnings derives the human-readable alerts from the ratio set and the
// stress series. Each rule triggers independently; only the stress scan
// stops at its first hit.
func Warnings(f map[string]float64, projection []simulation.ProjectionRow, sampleMonths []int) []string {
	warnings := []string{}

	if dti := f[features.DebtToIncomeRatio]; dti > 0.5 {
		warnings = append(warnings, fmt.Sprintf(
			"High debt-to-income ratio: %.1f%%. Recommended maximum is 40%%.", dti*100))
	}

	if buffer := f[features.BufferMonths]; buffer < 2 {
		warnings = append(warnings, fmt.Sprintf(
			"Low cash reserves: Only %.1f months of expenses. Recommend at least 3 months.", buffer))
	}

	if net := f[features.NetMonthlyCashflow]; net < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Negative monthly cashflow: %.0f TND. Expenses exceed income.", net))
	}

	if f[features.ExpenseVolatility] > 0.3 {
		warnings = append(warnings,
			"High expense volatility detected. Monthly expenses may vary significantly.")
	}

	if f[features.AvgIncomeReliability] < 0.7 {
		warnings = append(warnings,
			"Income reliability concerns. Consider additional income verification.")
	}

	for _, month := range sampleMonths {
		if month < 0 || month >= len(projection) {
			continue
		}
		if sp := projection[month].StressProbability; sp > 0.5 {
			warnings = append(warnings, fmt.Sprintf(
				"High stress probability (%.0f%%) at month %d. Potential liquidity crisis.", sp*100, month))
			break
		}
	}

	return warnings
}

// Recommendations lists approval conditions for medium-risk applications.
// Outside the 30..70 score band there is nothing to recommend: low risk
// needs no conditions and high risk is rejected outright.
func Recommendations(f map[string]float64, riskScore float64) []string {
	if riskScore <= 30 || riskScore >= 70 {
		return nil
	}

	recs := []string{}
	if f[features.BufferMonths] < 3 {
		recs = append(recs, "Request additional collateral or guarantor")
	}
	if f[features.DebtToIncomeRatio] > 0.4 {
		recs = append(recs, "Consider reducing loan amount or extending duration to improve DTI ratio")
	}
	if f[features.LoanDurationMonthsName] < 36 {
		recs = append(recs, "Extend loan duration to reduce monthly payment")
	}
	if f[features.HasFreelanceIncome] > 0 {
		recs = append(recs, "Require 6 months of bank statements for income verification")
	}
	recs = append(recs, "Set up automatic payments from salary account")
	return recs
}
