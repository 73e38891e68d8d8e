package simulation

import "financial-twin/internal/model"

// NoiseBounds is the closed interval a uniform noise factor is drawn from.
type NoiseBounds struct {
	Low  float64
	High float64
}

// Params is the configuration surface of the simulation engine. Every
// threshold and weight table the engine uses lives here so callers can
// override any of them; DefaultParams returns the production defaults.
type Params struct {
	// NSimulations is the ensemble size; HorizonMonths the forecast length.
	NSimulations  int
	HorizonMonths int

	// ReliabilityNoise gives the uniform bounds for the monthly income
	// noise factor, keyed by stream reliability.
	ReliabilityNoise map[model.Reliability]NoiseBounds

	// ConfidenceWeight scales a future income event by how certain it is.
	ConfidenceWeight map[model.Confidence]float64

	// StressThreshold is the balance below which a month counts as stressed.
	StressThreshold float64

	// ConsecutiveMonths below the threshold on the median trajectory
	// constitutes a default.
	ConsecutiveMonths int

	// StressSampleMonths are the fixed horizons scanned for the stress warning.
	StressSampleMonths []int

	// ReferenceYear anchors future-income dates: an event's month offset is
	// its calendar-month distance from January of this year.
	ReferenceYear int
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		NSimulations:  100,
		HorizonMonths: 24,
		ReliabilityNoise: map[model.Reliability]NoiseBounds{
			model.ReliabilityHigh:   {Low: 0.95, High: 1.05},
			model.ReliabilityMedium: {Low: 0.80, High: 1.15},
			model.ReliabilityLow:    {Low: 0.60, High: 1.30},
		},
		ConfidenceWeight: map[model.Confidence]float64{
			model.ConfidenceHigh:   1.0,
			model.ConfidenceMedium: 0.8,
			model.ConfidenceLow:    0.6,
		},
		StressThreshold:    -500,
		ConsecutiveMonths:  3,
		StressSampleMonths: []int{6, 12, 18, 24},
		ReferenceYear:      2026,
	}
}
