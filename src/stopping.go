package mambo

import "math"

// StoppingCriterion decides, from the loss history (most recent first),
// whether training should terminate. Criteria are only consulted on
// non-empty histories.
type StoppingCriterion func(losses []float64) bool

// NeverStop runs until the epoch or step budget is exhausted.
func NeverStop([]float64) bool { return false }

// DeltaBelow stops once two consecutive losses differ by less than eps.
func DeltaBelow(eps float64) StoppingCriterion {
	return func(losses []float64) bool {
		if len(losses) < 2 {
			return false
		}
		return math.Abs(losses[0]-losses[1]) < eps
	}
}

// LossBelow stops once the latest loss drops under the threshold.
func LossBelow(threshold float64) StoppingCriterion {
	return func(losses []float64) bool {
		return len(losses) > 0 && losses[0] < threshold
	}
}
