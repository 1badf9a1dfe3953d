package churn

import (
	"errors"
	"math"
	"time"

	"frontdesk/internal/domain/pass"
)

// ErrUnknownStrategy is returned when a strategy name is not recognised.
var ErrUnknownStrategy = errors.New("strategy must be one of: heuristic, classifier")

// Strategy constants
const (
	StrategyHeuristic  = "heuristic"
	StrategyClassifier = "classifier"
)

// NewMemberProbability is the fixed return probability for a member with no recorded visits.
const NewMemberProbability = 0.95

// Features are the recency/frequency inputs to a return estimate.
type Features struct {
	DaysLeft        int // days left on the active pass including today, 0 without one
	Attendance7     int // check-ins in the trailing 7 days
	Attendance3     int // check-ins in the trailing 3 days
	TotalAttendance int // all-time check-ins
}

// FeaturesFor derives Features from a member's active pass and check-in times.
// PRE: active is nil when the member holds no valid pass
// POST: windows are [now-7d, now] and [now-3d, now], inclusive of the lower bound
func FeaturesFor(now time.Time, active *pass.Pass, checkIns []time.Time) Features {
	f := Features{TotalAttendance: len(checkIns)}
	if active != nil {
		f.DaysLeft = pass.DaysBetween(now, active.EndDate) + 1
	}
	sevenDaysAgo := now.AddDate(0, 0, -7)
	threeDaysAgo := now.AddDate(0, 0, -3)
	for _, t := range checkIns {
		if !t.Before(sevenDaysAgo) {
			f.Attendance7++
		}
		if !t.Before(threeDaysAgo) {
			f.Attendance3++
		}
	}
	return f
}

// Estimator estimates the probability that a member returns.
type Estimator interface {
	Estimate(f Features) float64
}

// NewEstimator returns the estimator for a strategy.
// The classifier strategy trains on population and degrades to the heuristic when it cannot.
func NewEstimator(strategy string, population []Features) (Estimator, error) {
	switch strategy {
	case "", StrategyHeuristic:
		return Heuristic{}, nil
	case StrategyClassifier:
		return NewClassifier(population), nil
	}
	return nil, ErrUnknownStrategy
}

// Prediction is a rounded return probability with its risk band.
type Prediction struct {
	Probability float64
	Risk        ProbabilityRisk
}

// Predict scores a member.
// INVARIANT: A member with zero total attendance is always 0.95 / Low
func Predict(f Features, e Estimator) Prediction {
	if f.TotalAttendance == 0 {
		return Prediction{Probability: NewMemberProbability, Risk: RiskLow}
	}
	p := Round(clamp(e.Estimate(f)), 2)
	return Prediction{Probability: p, Risk: ProbabilityRiskBand(p)}
}

// ProbabilityRisk is the churn band derived from a return probability.
type ProbabilityRisk string

// Probability risk bands
const (
	RiskLow    ProbabilityRisk = "Low"
	RiskMedium ProbabilityRisk = "Medium"
	RiskHigh   ProbabilityRisk = "High"
)

// ProbabilityRiskBand maps a return probability to Low (>=0.7), Medium (>=0.4) or High.
func ProbabilityRiskBand(p float64) ProbabilityRisk {
	switch {
	case p >= 0.7:
		return RiskLow
	case p >= 0.4:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RecencyRisk is the churn band derived from days since the last visit.
type RecencyRisk string

// Recency risk bands
const (
	RecencyLow      RecencyRisk = "Low"
	RecencyMedium   RecencyRisk = "Medium"
	RecencyHigh     RecencyRisk = "High"
	RecencyCritical RecencyRisk = "Critical"
)

// RecencyRiskBand buckets days since the last visit.
// A member who never visited is Critical.
func RecencyRiskBand(daysSinceLastVisit int, visited bool) RecencyRisk {
	switch {
	case !visited:
		return RecencyCritical
	case daysSinceLastVisit <= 3:
		return RecencyLow
	case daysSinceLastVisit <= 7:
		return RecencyMedium
	case daysSinceLastVisit <= 14:
		return RecencyHigh
	default:
		return RecencyCritical
	}
}

// Returns summarises expected visits over the next few days.
type Returns struct {
	Likely   int // probability >= 0.7
	Maybe    int // 0.4 <= probability < 0.7
	Unlikely int
	Expected float64 // 0.8*Likely + 0.4*Maybe, one decimal
}

// ExpectedReturns buckets probabilities and weights the likely/maybe counts.
func ExpectedReturns(probabilities []float64) Returns {
	var r Returns
	for _, p := range probabilities {
		switch ProbabilityRiskBand(p) {
		case RiskLow:
			r.Likely++
		case RiskMedium:
			r.Maybe++
		default:
			r.Unlikely++
		}
	}
	r.Expected = Round(0.8*float64(r.Likely)+0.4*float64(r.Maybe), 1)
	return r
}

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

func clamp(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
