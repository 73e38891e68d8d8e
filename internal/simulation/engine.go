package simulation

import (
	"fmt"
	"sort"

	"financial-twin/internal/model"
)

// Ensemble is the aggregated output of one Monte Carlo run: the full
// trajectory matrix plus per-month percentile bands. It is recomputed from
// scratch each run, never mutated incrementally.
type Ensemble struct {
	// Trajectories[i][m] is the balance of simulation i at month m.
	Trajectories [][]float64

	P10  []float64
	P50  []float64
	P90  []float64
	Mean []float64

	HorizonMonths int
	NSimulations  int

	// Notes carries recoverable input conditions (skipped future incomes).
	Notes []string
}

// Engine runs independent trajectory simulations and aggregates them.
// It holds no state across calls.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates the full ensemble for a profile. Simulation i uses seed i,
// which makes the whole run reproducible: two runs over the same profile
// produce identical percentile series.
func (e *Engine) Run(profile *model.Profile, params Params) (*Ensemble, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is nil")
	}
	n := params.NSimulations
	if profile.NSimulations > 0 {
		n = profile.NSimulations
	}
	if n <= 0 {
		return nil, fmt.Errorf("n_simulations must be > 0, got %d", n)
	}

	sim := NewSimulator(profile, params)
	horizon := sim.Horizon()
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon_months must be > 0, got %d", horizon)
	}

	trajectories := make([][]float64, n)
	for i := 0; i < n; i++ {
		trajectories[i] = sim.Trajectory(int64(i))
	}

	ens := &Ensemble{
		Trajectories:  trajectories,
		P10:           make([]float64, horizon+1),
		P50:           make([]float64, horizon+1),
		P90:           make([]float64, horizon+1),
		Mean:          make([]float64, horizon+1),
		HorizonMonths: horizon,
		NSimulations:  n,
		Notes:         sim.Notes(),
	}

	column := make([]float64, n)
	for m := 0; m <= horizon; m++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			column[i] = trajectories[i][m]
			sum += column[i]
		}
		sort.Float64s(column)
		ens.P10[m] = percentileSorted(column, 0.10)
		ens.P50[m] = percentileSorted(column, 0.50)
		ens.P90[m] = percentileSorted(column, 0.90)
		ens.Mean[m] = sum / float64(n)
	}

	return ens, nil
}
