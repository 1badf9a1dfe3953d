package churn

// Heuristic is the hand-tuned banded scorer and the default estimator.
type Heuristic struct{}

// Estimate sums three bands: days left (max 0.3), 7-day visits (max 0.4), 3-day visits (max 0.3).
// Scored in hundredths so band sums are exact.
func (Heuristic) Estimate(f Features) float64 {
	score := 0

	switch {
	case f.DaysLeft > 5:
		score += 30
	case f.DaysLeft > 2:
		score += 20
	case f.DaysLeft > 0:
		score += 10
	}

	switch {
	case f.Attendance7 >= 4:
		score += 40
	case f.Attendance7 >= 2:
		score += 25
	case f.Attendance7 >= 1:
		score += 10
	}

	switch {
	case f.Attendance3 >= 2:
		score += 30
	case f.Attendance3 >= 1:
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return float64(score) / 100
}
