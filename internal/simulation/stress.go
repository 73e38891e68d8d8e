package simulation

// StressProbability is the fraction of trajectories whose balance at the
// given month is strictly below threshold.
func (e *Ensemble) StressProbability(month int, threshold float64) float64 {
	if month < 0 || month > e.HorizonMonths || len(e.Trajectories) == 0 {
		return 0
	}
	below := 0
	for _, t := range e.Trajectories {
		if t[month] < threshold {
			below++
		}
	}
	return float64(below) / float64(len(e.Trajectories))
}

// StressSeries is StressProbability evaluated at every month 0..horizon.
func (e *Ensemble) StressSeries(threshold float64) []float64 {
	out := make([]float64, e.HorizonMonths+1)
	for m := range out {
		out[m] = e.StressProbability(m, threshold)
	}
	return out
}

// IdentifyDefault scans a balance series month by month and reports whether
// it ever stays below threshold for consecutive months in a row. The counter
// resets on any month at or above the threshold.
func IdentifyDefault(series []float64, threshold float64, consecutive int) bool {
	if consecutive <= 0 {
		return false
	}
	run := 0
	for _, balance := range series {
		if balance < threshold {
			run++
			if run >= consecutive {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// Defaulted applies the default rule to the median trajectory. Checking the
// p50 series rather than individual trajectories reports the typical default
// pattern, not the worst case.
func (e *Ensemble) Defaulted(params Params) bool {
	return IdentifyDefault(e.P50, params.StressThreshold, params.ConsecutiveMonths)
}
