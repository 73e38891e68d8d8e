package assessment

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"financial-twin/internal/features"
	"financial-twin/internal/model"
	"financial-twin/internal/scoring"
	"financial-twin/internal/simulation"
)

// ErrInvalidProfile marks input errors: the profile failed validation before
// any simulation started. Callers map it to a 400.
var ErrInvalidProfile = errors.New("invalid profile")

const contributionsTopN = 5

// Assessment is the complete result returned to the caller. Either the whole
// assessment succeeds or a single structured error is returned; there are no
// partial results.
type Assessment struct {
	RiskScore      float64 `json:"risk_score"`
	RiskCategory   string  `json:"risk_category"`
	Recommendation string  `json:"recommendation"`

	MonthlyIncome      float64 `json:"monthly_income"`
	MonthlyExpenses    float64 `json:"monthly_expenses"`
	MonthlyLoanPayment float64 `json:"monthly_loan_payment"`
	DebtToIncomeRatio  float64 `json:"debt_to_income_ratio"`
	NetMonthlyCashflow float64 `json:"net_monthly_cashflow"`

	RiskBreakdown []BreakdownEntry `json:"risk_breakdown"`

	TopRiskDrivers       []scoring.Contribution `json:"top_risk_drivers"`
	TopProtectiveFactors []scoring.Contribution `json:"top_protective_factors"`

	CashflowProjection []simulation.ProjectionRow `json:"cashflow_projection"`

	DefaultProbability12Months float64 `json:"default_probability_12_months"`
	DefaultProbability24Months float64 `json:"default_probability_24_months"`
	MedianDefault              bool    `json:"median_default"`
	BufferMonths               float64 `json:"buffer_months"`

	Warnings                   []string `json:"warnings"`
	RecommendationsForApproval []string `json:"recommendations_for_approval,omitempty"`
}

// QuickScore is the reduced prediction-only result.
type QuickScore struct {
	RiskScore          float64 `json:"risk_score"`
	RiskCategory       string  `json:"risk_category"`
	Recommendation     string  `json:"recommendation"`
	DefaultProbability float64 `json:"default_probability"`
}

// Explanation carries the model attribution detail for one profile.
type Explanation struct {
	RiskScore            float64                `json:"risk_score"`
	TopRiskDrivers       []scoring.Contribution `json:"top_risk_drivers"`
	TopProtectiveFactors []scoring.Contribution `json:"top_protective_factors"`
	FeatureValues        map[string]float64     `json:"feature_values"`
}

// Service runs the full risk assessment pipeline: features, model
// prediction, Monte Carlo simulation, breakdown, warnings.
type Service struct {
	model  *scoring.Model
	engine *simulation.Engine
	params simulation.Params
	log    *logrus.Logger
}

func NewService(m *scoring.Model, params simulation.Params, log *logrus.Logger) *Service {
	return &Service{
		model:  m,
		engine: simulation.New(),
		params: params,
		log:    log,
	}
}

// Assess performs the complete risk assessment for one profile.
func (s *Service) Assess(profile *model.Profile) (*Assessment, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	feats, err := features.Extract(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	riskScore, _, err := s.model.Predict(feats)
	if err != nil {
		return nil, err
	}
	drivers, protective, err := s.model.Contributions(feats, contributionsTopN)
	if err != nil {
		return nil, err
	}

	ens, err := s.engine.Run(profile, s.params)
	if err != nil {
		return nil, err
	}
	projection := ens.Projection(s.params.StressThreshold)

	warnings := Warnings(feats, projection, s.params.StressSampleMonths)
	warnings = append(warnings, ens.Notes...)

	result := &Assessment{
		RiskScore:      riskScore,
		RiskCategory:   Categorize(riskScore),
		Recommendation: Recommend(riskScore),

		MonthlyIncome:      feats[features.MonthlyIncome],
		MonthlyExpenses:    feats[features.MonthlyExpenses],
		MonthlyLoanPayment: feats[features.LoanPayment],
		DebtToIncomeRatio:  feats[features.DebtToIncomeRatio],
		NetMonthlyCashflow: feats[features.NetMonthlyCashflow],

		RiskBreakdown: Breakdown(feats),

		TopRiskDrivers:       drivers,
		TopProtectiveFactors: protective,

		CashflowProjection: projection,

		DefaultProbability12Months: stressAt(projection, 12),
		DefaultProbability24Months: stressAt(projection, 24),
		MedianDefault:              ens.Defaulted(s.params),
		BufferMonths:               feats[features.BufferMonths],

		Warnings:                   warnings,
		RecommendationsForApproval: Recommendations(feats, riskScore),
	}

	s.log.WithFields(logrus.Fields{
		"risk_score":     fmt.Sprintf("%.1f", result.RiskScore),
		"risk_category":  result.RiskCategory,
		"recommendation": result.Recommendation,
		"n_simulations":  ens.NSimulations,
		"horizon_months": ens.HorizonMonths,
	}).Info("assessment complete")

	return result, nil
}

// QuickScore predicts without simulation or breakdown.
func (s *Service) QuickScore(profile *model.Profile) (*QuickScore, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	feats, err := features.Extract(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	riskScore, probs, err := s.model.Predict(feats)
	if err != nil {
		return nil, err
	}
	return &QuickScore{
		RiskScore:          riskScore,
		RiskCategory:       Categorize(riskScore),
		Recommendation:     Recommend(riskScore),
		DefaultProbability: probs[1],
	}, nil
}

// Explain returns the prediction with extended attributions.
func (s *Service) Explain(profile *model.Profile, topN int) (*Explanation, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	feats, err := features.Extract(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	riskScore, _, err := s.model.Predict(feats)
	if err != nil {
		return nil, err
	}
	drivers, protective, err := s.model.Contributions(feats, topN)
	if err != nil {
		return nil, err
	}
	return &Explanation{
		RiskScore:            riskScore,
		TopRiskDrivers:       drivers,
		TopProtectiveFactors: protective,
		FeatureValues: map[string]float64{
			features.MonthlyIncome:      feats[features.MonthlyIncome],
			features.MonthlyExpenses:    feats[features.MonthlyExpenses],
			features.DebtToIncomeRatio:  feats[features.DebtToIncomeRatio],
			features.BufferMonths:       feats[features.BufferMonths],
			features.NetMonthlyCashflow: feats[features.NetMonthlyCashflow],
		},
	}, nil
}

// Categorize buckets a risk score into its category label.
func Categorize(score float64) string {
	switch {
	case score < 25:
		return "low"
	case score < 50:
		return "medium"
	case score < 75:
		return "high"
	default:
		return "very_high"
	}
}

// Recommend maps a risk score to the lending decision.
func Recommend(score float64) string {
	switch {
	case score < 30:
		return "approve"
	case score < 60:
		return "review"
	default:
		return "reject"
	}
}

// stressAt samples the stress probability at a fixed month, clamped to the
// projection's last row when the horizon is shorter.
func stressAt(projection []simulation.ProjectionRow, month int) float64 {
	if len(projection) == 0 {
		return 0
	}
	if month >= len(projection) {
		month = len(projection) - 1
	}
	return projection[month].StressProbability
}
