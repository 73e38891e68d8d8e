package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"financial-twin/internal/model"
)

// futureInflow is a future income event resolved to a simulation month.
type futureInflow struct {
	month  int
	amount float64
}

// Simulator produces stochastic balance trajectories for one profile.
// It is read-only after construction, so trajectories for different seeds
// can be generated concurrently.
type Simulator struct {
	profile *model.Profile
	params  Params
	horizon int

	loanPayment float64
	inflows     []futureInflow
	notes       []string
}

// NewSimulator resolves the horizon (profile override wins over params) and
// pre-resolves future income dates. An unparsable expected_date does not fail
// the simulation: the entry contributes nothing and the condition is recorded
// as a note for surfacing as a warning.
func NewSimulator(profile *model.Profile, params Params) *Simulator {
	horizon := params.HorizonMonths
	if profile.HorizonMonths > 0 {
		horizon = profile.HorizonMonths
	}

	s := &Simulator{
		profile:     profile,
		params:      params,
		horizon:     horizon,
		loanPayment: profile.LoanPayment(),
	}

	for _, f := range profile.FutureIncomes {
		offset, err := monthOffset(f.ExpectedDate, params.ReferenceYear)
		if err != nil {
			s.notes = append(s.notes, fmt.Sprintf(
				"Future income %q skipped: expected_date %q is not a valid YYYY-MM-DD date.",
				f.Type, f.ExpectedDate))
			continue
		}
		s.inflows = append(s.inflows, futureInflow{
			month:  offset,
			amount: f.ExpectedAmount * params.ConfidenceWeight[f.Confidence],
		})
	}

	return s
}

// Horizon is the resolved forecast length in months.
func (s *Simulator) Horizon() int { return s.horizon }

// Notes are the recoverable conditions found while preparing the simulation
// (currently: skipped future income entries).
func (s *Simulator) Notes() []string { return s.notes }

// Trajectory simulates one balance path. The same seed always produces the
// same path: each call owns an independent generator seeded by the
// simulation index, so runs never share random state.
func (s *Simulator) Trajectory(seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	p := s.profile

	balance := make([]float64, s.horizon+1)
	balance[0] = p.CurrentBalance

	for m := 1; m <= s.horizon; m++ {
		calendarMonth := (m-1)%12 + 1

		income := 0.0
		for _, stream := range p.IncomeStreams {
			b := s.params.ReliabilityNoise[stream.Reliability]
			factor := b.Low + rng.Float64()*(b.High-b.Low)
			income += stream.Amount * factor
		}

		expenses := 0.0
		for _, e := range p.Expenses {
			noise := 1.0 + rng.NormFloat64()*e.Volatility
			expenses += e.MonthlyBaseline * e.Multiplier(calendarMonth) * noise
		}

		obligations := 0.0
		for _, o := range p.Obligations {
			if o.RemainingMonths >= m {
				obligations += o.MonthlyAmount
			}
		}

		// Life events recur every year on their calendar month.
		eventExpense := 0.0
		for _, ev := range p.LifeEvents {
			if ev.StartMonth == calendarMonth {
				eventExpense += ev.ExpenseImpact
			}
		}

		loanPayment := 0.0
		if m <= p.LoanDurationMonths {
			loanPayment = s.loanPayment
		}

		futureIncome := 0.0
		for _, f := range s.inflows {
			if f.month == m {
				futureIncome += f.amount
			}
		}

		net := income + futureIncome - expenses - obligations - loanPayment - eventExpense
		balance[m] = balance[m-1] + net
	}

	return balance
}

// monthOffset converts a YYYY-MM-DD date into its calendar-month distance
// from January of the reference year.
func monthOffset(date string, referenceYear int) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return (t.Year()-referenceYear)*12 + int(t.Month()) - 1, nil
}
