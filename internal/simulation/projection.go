package simulation

// ProjectionRow is one month of the cashflow projection returned to callers.
type ProjectionRow struct {
	Month             int     `json:"month"`
	P10               float64 `json:"p10"`
	Median            float64 `json:"median"`
	P90               float64 `json:"p90"`
	StressProbability float64 `json:"stress_probability"`
}

// Projection flattens the ensemble into per-month rows, stress evaluated
// against the given threshold.
func (e *Ensemble) Projection(threshold float64) []ProjectionRow {
	rows := make([]ProjectionRow, e.HorizonMonths+1)
	for m := 0; m <= e.HorizonMonths; m++ {
		rows[m] = ProjectionRow{
			Month:             m,
			P10:               e.P10[m],
			Median:            e.P50[m],
			P90:               e.P90[m],
			StressProbability: e.StressProbability(m, threshold),
		}
	}
	return rows
}
