package model

import (
	"errors"
	"fmt"
)

// Reliability classifies how dependable an income stream is.
// Keep these values stable; they appear in request JSON and config tables.
type Reliability string

const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

func (r Reliability) Valid() bool {
	switch r {
	case ReliabilityHigh, ReliabilityMedium, ReliabilityLow:
		return true
	}
	return false
}

// Confidence classifies how certain a future income event is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
)

func (m MaritalStatus) Valid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalDivorced:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentSalaried      EmploymentType = "salaried"
	EmploymentFreelancer    EmploymentType = "freelancer"
	EmploymentBusinessOwner EmploymentType = "business_owner"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentSalaried, EmploymentFreelancer, EmploymentBusinessOwner:
		return true
	}
	return false
}

// IncomeStream is one recurring income source.
// Amount is the monthly amount in TND; GrowthRate is annual %.
type IncomeStream struct {
	Type        string      `json:"type"`
	Amount      float64     `json:"amount"`
	Frequency   string      `json:"frequency"`
	Reliability Reliability `json:"reliability"`
	GrowthRate  float64     `json:"growth_rate"`
}

// FutureIncome is a one-off expected inflow (inheritance, bonus, asset sale).
// ExpectedDate is a calendar date in YYYY-MM-DD form.
type FutureIncome struct {
	Type           string     `json:"type"`
	ExpectedDate   string     `json:"expected_date"`
	ExpectedAmount float64    `json:"expected_amount"`
	Confidence     Confidence `json:"confidence"`
}

// Expense is one expense category with a monthly baseline.
// SeasonalMultipliers maps calendar month (1..12) to a multiplier; months
// without an entry use 1.0. Volatility is the relative standard deviation
// of the month-to-month noise, in [0,1].
type Expense struct {
	Category            string          `json:"category"`
	Subcategory         string          `json:"subcategory"`
	MonthlyBaseline     float64         `json:"monthly_baseline"`
	SeasonalMultipliers map[int]float64 `json:"seasonal_multipliers,omitempty"`
	Volatility          float64         `json:"volatility"`
}

// Multiplier returns the seasonal multiplier for a calendar month (1..12).
func (e Expense) Multiplier(month int) float64 {
	if m, ok := e.SeasonalMultipliers[month]; ok {
		return m
	}
	return 1.0
}

// Obligation is an existing recurring payment (loan, credit card, subscription).
// It is active through month RemainingMonths, inclusive.
type Obligation struct {
	Type            string  `json:"type"`
	MonthlyAmount   float64 `json:"monthly_amount"`
	RemainingMonths int     `json:"remaining_months"`
}

// LifeEvent is a recurring annual expense anchored to a calendar month
// (e.g. back-to-school, Eid). It fires every year on StartMonth within
// the simulation horizon.
type LifeEvent struct {
	Name           string  `json:"name"`
	StartMonth     int     `json:"start_month"`
	DurationMonths int     `json:"duration_months"`
	ExpenseImpact  float64 `json:"expense_impact"`
}

// Profile is the immutable input to one risk assessment: the household's
// financial state plus the requested loan.
type Profile struct {
	HouseholdSize  int            `json:"household_size"`
	MaritalStatus  MaritalStatus  `json:"marital_status"`
	Dependents     int            `json:"dependents"`
	Region         string         `json:"region"`
	EmploymentType EmploymentType `json:"employment_type"`

	CurrentBalance float64        `json:"current_balance"`
	IncomeStreams  []IncomeStream `json:"income_streams"`
	FutureIncomes  []FutureIncome `json:"future_incomes,omitempty"`
	Expenses       []Expense      `json:"expenses"`
	Obligations    []Obligation   `json:"obligations,omitempty"`
	LifeEvents     []LifeEvent    `json:"life_events,omitempty"`

	LoanAmount         float64 `json:"loan_amount"`
	LoanDurationMonths int     `json:"loan_duration_months"`
	LoanInterestRate   float64 `json:"loan_interest_rate"`

	// Optional simulation overrides. Zero means "use configured defaults".
	HorizonMonths int `json:"horizon_months,omitempty"`
	NSimulations  int `json:"n_simulations,omitempty"`
}

// Validate checks structural completeness once, before any simulation starts.
// A missing or unknown reliability/confidence value is a hard input error,
// never a silent default.
func (p *Profile) Validate() error {
	if p == nil {
		return errors.New("profile is nil")
	}
	if p.HouseholdSize < 1 {
		return errors.New("household_size must be >= 1")
	}
	if !p.MaritalStatus.Valid() {
		return fmt.Errorf("marital_status %q is not one of single/married/divorced", p.MaritalStatus)
	}
	if p.Dependents < 0 {
		return errors.New("dependents must be >= 0")
	}
	if !p.EmploymentType.Valid() {
		return fmt.Errorf("employment_type %q is not one of salaried/freelancer/business_owner", p.EmploymentType)
	}
	if len(p.IncomeStreams) == 0 {
		return errors.New("at least one income stream is required")
	}
	for i, s := range p.IncomeStreams {
		if s.Amount <= 0 {
			return fmt.Errorf("income_streams[%d]: amount must be > 0", i)
		}
		if !s.Reliability.Valid() {
			return fmt.Errorf("income_streams[%d]: reliability %q is not one of high/medium/low", i, s.Reliability)
		}
	}
	for i, f := range p.FutureIncomes {
		if f.ExpectedAmount <= 0 {
			return fmt.Errorf("future_incomes[%d]: expected_amount must be > 0", i)
		}
		if !f.Confidence.Valid() {
			return fmt.Errorf("future_incomes[%d]: confidence %q is not one of high/medium/low", i, f.Confidence)
		}
	}
	if len(p.Expenses) == 0 {
		return errors.New("at least one expense category is required")
	}
	for i, e := range p.Expenses {
		if e.MonthlyBaseline <= 0 {
			return fmt.Errorf("expenses[%d]: monthly_baseline must be > 0", i)
		}
		if e.Volatility < 0 || e.Volatility > 1 {
			return fmt.Errorf("expenses[%d]: volatility must be in [0,1]", i)
		}
		for month := range e.SeasonalMultipliers {
			if month < 1 || month > 12 {
				return fmt.Errorf("expenses[%d]: seasonal multiplier month %d out of range 1..12", i, month)
			}
		}
	}
	for i, o := range p.Obligations {
		if o.MonthlyAmount <= 0 {
			return fmt.Errorf("obligations[%d]: monthly_amount must be > 0", i)
		}
		if o.RemainingMonths <= 0 {
			return fmt.Errorf("obligations[%d]: remaining_months must be > 0", i)
		}
	}
	for i, ev := range p.LifeEvents {
		if ev.StartMonth < 1 || ev.StartMonth > 12 {
			return fmt.Errorf("life_events[%d]: start_month must be in 1..12", i)
		}
		if ev.ExpenseImpact < 0 {
			return fmt.Errorf("life_events[%d]: expense_impact must be >= 0", i)
		}
	}
	if p.LoanAmount <= 0 {
		return errors.New("loan_amount must be > 0")
	}
	if p.LoanDurationMonths <= 0 || p.LoanDurationMonths > 60 {
		return errors.New("loan_duration_months must be in 1..60")
	}
	if p.LoanInterestRate <= 0 || p.LoanInterestRate > 20 {
		return errors.New("loan_interest_rate must be in (0,20] percent")
	}
	if p.HorizonMonths < 0 {
		return errors.New("horizon_months must be >= 0")
	}
	if p.NSimulations < 0 {
		return errors.New("n_simulations must be >= 0")
	}
	return nil
}

// MonthlyIncome is the sum of baseline income stream amounts.
func (p *Profile) MonthlyIncome() float64 {
	total := 0.0
	for _, s := range p.IncomeStreams {
		total += s.Amount
	}
	return total
}

// MonthlyExpenses is the sum of expense baselines (no seasonality or noise).
func (p *Profile) MonthlyExpenses() float64 {
	total := 0.0
	for _, e := range p.Expenses {
		total += e.MonthlyBaseline
	}
	return total
}

// MonthlyObligations is the sum of recurring obligation payments.
func (p *Profile) MonthlyObligations() float64 {
	total := 0.0
	for _, o := range p.Obligations {
		total += o.MonthlyAmount
	}
	return total
}

// LoanPayment is the fixed monthly annuity payment for the requested loan.
func (p *Profile) LoanPayment() float64 {
	return AnnuityPayment(p.LoanAmount, p.LoanInterestRate, p.LoanDurationMonths)
}
