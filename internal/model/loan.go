package model

import "math"

// AnnuityPayment computes the fixed monthly payment that fully amortizes
// principal over months at the given annual rate (in percent).
// At a zero rate the annuity formula divides by zero; the closed-form
// limit is a straight principal split.
func AnnuityPayment(principal, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRatePct / 100 / 12
	if r == 0 {
		return principal / float64(months)
	}
	pow := math.Pow(1+r, float64(months))
	return principal * (r * pow) / (pow - 1)
}
