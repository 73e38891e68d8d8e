package assessment

import "financial-twin/internal/features"

const (
	StatusGood     = "good"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// BreakdownEntry is one explanatory sub-score of the assessment. The five
// entries are functions of static ratios only, independent of the Monte
// Carlo output and of the model's overall score.
type BreakdownEntry struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Status      string  `json:"status"`
}

// band is one row of an ordered threshold table.
type band struct {
	limit float64
	score float64
}

// Ordered threshold tables for the stepped sub-scores. Expressing the bands
// as data keeps each cut point independently testable and tunable.
var (
	debtBurdenBands = []band{ // score applies while ratio < limit
		{0.2, 100},
		{0.3, 85},
		{0.4, 70},
		{0.5, 50},
		{0.6, 30},
	}
	liquidityBands = []band{ // score applies while buffer > limit
		{6, 100},
		{4, 85},
		{3, 70},
		{2, 50},
		{1, 30},
	}
	cashflowMarginBands = []band{ // score applies while margin > limit
		{0.3, 100},
		{0.2, 85},
		{0.1, 70},
		{0, 50},
		{-0.1, 30},
	}
)

const bandFloor = 10

func scoreBelow(value float64, bands []band) float64 {
	for _, b := range bands {
		if value < b.limit {
			return b.score
		}
	}
	return bandFloor
}

func scoreAbove(value float64, bands []band) float64 {
	for _, b := range bands {
		if value > b.limit {
			return b.score
		}
	}
	return bandFloor
}

func statusFor(score float64) string {
	switch {
	case score >= 70:
		return StatusGood
	case score >= 40:
		return StatusWarning
	default:
		return StatusCritical
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Breakdown produces the five-entry risk breakdown from the feature vector.
func Breakdown(f map[string]float64) []BreakdownEntry {
	entries := []struct {
		category    string
		description string
		score       float64
	}{
		{"Income Stability", "Reliability and consistency of income sources", incomeStabilityScore(f)},
		{"Debt Burden", "Current debt obligations relative to income", scoreBelow(f[features.DebtToIncomeRatio], debtBurdenBands)},
		{"Liquidity", "Available cash reserves and buffer", scoreAbove(f[features.BufferMonths], liquidityBands)},
		{"Cashflow Margin", "Monthly surplus after all expenses", scoreAbove(f[features.CashflowMargin], cashflowMarginBands)},
		{"Expense Stability", "Predictability of monthly expenses", expenseStabilityScore(f)},
	}

	out := make([]BreakdownEntry, len(entries))
	for i, e := range entries {
		out[i] = BreakdownEntry{
			Category:    e.category,
			Description: e.description,
			Score:       e.score,
			Status:      statusFor(e.score),
		}
	}
	return out
}

func incomeStabilityScore(f map[string]float64) float64 {
	score := 50.0
	score += f[features.AvgIncomeReliability] * 20
	if f[features.HasMultipleStreams] > 0 {
		score += 10
	}
	if f[features.HasFreelanceIncome] > 0 {
		score -= 15
	}
	score -= f[features.IncomeVolatility] * 30
	score += f[features.AvgIncomeGrowthRate]
	return clampScore(score)
}

func expenseStabilityScore(f map[string]float64) float64 {
	score := 100.0
	score -= f[features.ExpenseVolatility] * 200
	score -= (f[features.MaxSeasonalMultiplier] - 1.0) * 50
	return clampScore(score)
}
