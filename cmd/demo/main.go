package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"financial-twin/internal/assessment"
	"financial-twin/internal/config"
	"financial-twin/internal/model"
	"financial-twin/internal/scoring"
	"financial-twin/internal/simulation"
)

// Demo:
// - Build a canned household profile (married salaried earner with a
//   freelance side income, seasonal expenses, a car loan and a planned
//   wedding)
// - Score it against the loan risk model
// - Run the full cashflow simulation and print the assessment
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	outCSV := flag.String("out", "", "Optional path to write projection CSV (e.g. results/projection.csv)")
	flag.Parse()

	profile := demoProfile()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	riskModel := scoring.NewModel()
	if err := riskModel.Load(cfg.Model.File); err != nil {
		panic(err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	svc := assessment.NewService(riskModel, cfg.SimulationParams(), logger)

	result, err := svc.Assess(profile)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Loan request: %.0f TND over %d months at %.1f%%\n",
		profile.LoanAmount, profile.LoanDurationMonths, profile.LoanInterestRate)
	fmt.Printf("Monthly payment: %.2f TND\n\n", result.MonthlyLoanPayment)

	fmt.Printf("Risk score:     %.1f (%s)\n", result.RiskScore, result.RiskCategory)
	fmt.Printf("Recommendation: %s\n", result.Recommendation)
	fmt.Printf("Net cashflow:   %.0f TND/month  (income %.0f, expenses %.0f)\n",
		result.NetMonthlyCashflow, result.MonthlyIncome, result.MonthlyExpenses)
	fmt.Printf("Buffer:         %.1f months\n", result.BufferMonths)
	fmt.Printf("Default prob:   %.1f%% at 12 months, %.1f%% at 24 months\n\n",
		result.DefaultProbability12Months*100, result.DefaultProbability24Months*100)

	fmt.Println("Risk breakdown:")
	for _, entry := range result.RiskBreakdown {
		fmt.Printf("  %-20s %5.0f  [%s]\n", entry.Category, entry.Score, entry.Status)
	}

	if len(result.TopRiskDrivers) > 0 {
		fmt.Println("\nTop risk drivers:")
		for _, c := range result.TopRiskDrivers {
			fmt.Printf("  %-28s value=%9.3f  contribution=%+.4f\n",
				c.FeatureName, c.FeatureValue, c.ContributionValue)
		}
	}
	if len(result.TopProtectiveFactors) > 0 {
		fmt.Println("\nTop protective factors:")
		for _, c := range result.TopProtectiveFactors {
			fmt.Printf("  %-28s value=%9.3f  contribution=%+.4f\n",
				c.FeatureName, c.FeatureValue, c.ContributionValue)
		}
	}

	fmt.Println("\nProjection (selected months):")
	for _, row := range result.CashflowProjection {
		if row.Month%6 != 0 {
			continue
		}
		fmt.Printf("  month %2d  p10=%9.2f  median=%9.2f  p90=%9.2f  stress=%.0f%%\n",
			row.Month, row.P10, row.Median, row.P90, row.StressProbability*100)
	}

	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(result.RecommendationsForApproval) > 0 {
		fmt.Println("\nRecommendations for approval:")
		for _, r := range result.RecommendationsForApproval {
			fmt.Printf("  - %s\n", r)
		}
	}

	if *outCSV != "" {
		if err := simulation.WriteProjectionCSV(*outCSV, result.CashflowProjection); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

}

// demoProfile is a mid-risk Tunisian household: steady salary plus an
// irregular freelance stream, seasonal spending around summer and the
// school year, an existing car loan and a wedding planned for month 8.
func demoProfile() *model.Profile {
	return &model.Profile{
		HouseholdSize:  3,
		MaritalStatus:  model.MaritalMarried,
		Dependents:     1,
		Region:         "Tunis",
		EmploymentType: model.EmploymentSalaried,

		CurrentBalance: 4500,
		IncomeStreams: []model.IncomeStream{
			{
				Type:        "salary",
				Amount:      2800,
				Frequency:   "monthly",
				Reliability: model.ReliabilityHigh,
				GrowthRate:  0.03,
			},
			{
				Type:        "freelance",
				Amount:      600,
				Frequency:   "monthly",
				Reliability: model.ReliabilityLow,
			},
		},
		FutureIncomes: []model.FutureIncome{
			{
				Type:           "annual_bonus",
				ExpectedDate:   "2026-12-15",
				ExpectedAmount: 1500,
				Confidence:     model.ConfidenceMedium,
			},
			{
				// Malformed on purpose so the skip note shows up.
				Type:           "tax_refund",
				ExpectedDate:   "sometime next spring",
				ExpectedAmount: 400,
				Confidence:     model.ConfidenceLow,
			},
		},
		Expenses: []model.Expense{
			{
				Category:        "housing",
				Subcategory:     "rent",
				MonthlyBaseline: 900,
				Volatility:      0.0,
			},
			{
				Category:        "food",
				MonthlyBaseline: 650,
				Volatility:      0.10,
				SeasonalMultipliers: map[int]float64{
					7: 1.3, 8: 1.3,
				},
			},
			{
				Category:        "utilities",
				MonthlyBaseline: 180,
				Volatility:      0.15,
			},
			{
				Category:        "education",
				MonthlyBaseline: 120,
				Volatility:      0.05,
				SeasonalMultipliers: map[int]float64{
					9: 2.0,
				},
			},
		},
		Obligations: []model.Obligation{
			{
				Type:            "car_loan",
				MonthlyAmount:   320,
				RemainingMonths: 10,
			},
		},
		LifeEvents: []model.LifeEvent{
			{
				Name:           "wedding",
				StartMonth:     8,
				DurationMonths: 1,
				ExpenseImpact:  2000,
			},
		},

		LoanAmount:         20000,
		LoanDurationMonths: 36,
		LoanInterestRate:   9.5,
	}
}
