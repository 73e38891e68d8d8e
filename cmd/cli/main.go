package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"financial-twin/internal/assessment"
	"financial-twin/internal/config"
	"financial-twin/internal/model"
	"financial-twin/internal/scoring"
	"financial-twin/internal/simulation"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "assess":
		cmdAssess(os.Args[2:])
	case "score":
		cmdScore(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli assess --profile examples/profiles/salaried.json --config examples/config.yaml --out results/projection.csv")
	fmt.Println("  cli score --profile examples/profiles/salaried.json --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - assess runs the full pipeline: simulation, breakdown, warnings, recommendations")
	fmt.Println("  - score runs only the model prediction (no simulation)")
}

func cmdAssess(args []string) {
	fs := flag.NewFlagSet("assess", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to profile JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	outPath := fs.String("out", "", "Optional path to write projection CSV")
	_ = fs.Parse(args)

	if *profilePath == "" {
		fmt.Println("--profile is required")
		os.Exit(2)
	}

	profile, svc := setup(*profilePath, *cfgPath)

	result, err := svc.Assess(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assessment failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Risk score:        %.1f (%s)\n", result.RiskScore, result.RiskCategory)
	fmt.Printf("Recommendation:    %s\n", result.Recommendation)
	fmt.Printf("Monthly income:    %.2f TND\n", result.MonthlyIncome)
	fmt.Printf("Monthly expenses:  %.2f TND\n", result.MonthlyExpenses)
	fmt.Printf("Loan payment:      %.2f TND\n", result.MonthlyLoanPayment)
	fmt.Printf("Debt-to-income:    %.1f%%\n", result.DebtToIncomeRatio*100)
	fmt.Printf("Buffer months:     %.1f\n", result.BufferMonths)
	fmt.Printf("Default prob:      12m=%.0f%%  24m=%.0f%%\n",
		result.DefaultProbability12Months*100, result.DefaultProbability24Months*100)

	fmt.Println("\nRisk breakdown:")
	for _, b := range result.RiskBreakdown {
		fmt.Printf("  %-18s %5.1f  [%s]\n", b.Category, b.Score, b.Status)
	}

	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(result.RecommendationsForApproval) > 0 {
		fmt.Println("\nConditions for approval:")
		for _, r := range result.RecommendationsForApproval {
			fmt.Printf("  - %s\n", r)
		}
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := simulation.WriteProjectionCSV(*outPath, result.CashflowProjection); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(result.CashflowProjection), *outPath)
	}
}

func cmdScore(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to profile JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	if *profilePath == "" {
		fmt.Println("--profile is required")
		os.Exit(2)
	}

	profile, svc := setup(*profilePath, *cfgPath)

	result, err := svc.QuickScore(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scoring failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Risk score:          %.1f (%s)\n", result.RiskScore, result.RiskCategory)
	fmt.Printf("Recommendation:      %s\n", result.Recommendation)
	fmt.Printf("Default probability: %.1f%%\n", result.DefaultProbability*100)
}

func setup(profilePath, cfgPath string) (*model.Profile, *assessment.Service) {
	profile, err := loadProfile(profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load profile: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	riskModel := scoring.NewModel()
	if err := riskModel.Load(cfg.Model.File); err != nil {
		fmt.Fprintf(os.Stderr, "load risk model: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return profile, assessment.NewService(riskModel, cfg.SimulationParams(), logger)
}

func loadProfile(path string) (*model.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}
