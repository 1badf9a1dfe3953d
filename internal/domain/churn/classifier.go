package churn

import "math"

// Training constants for the advisory classifier.
const (
	minTrainingRows   = 3
	trainIterations   = 1000
	trainLearningRate = 0.5
	l2Penalty         = 1.0
	returnLabelVisits = 2 // synthetic label: returns iff Attendance7 >= 2
)

// Classifier is a three-feature logistic regression trained on the member population itself.
// The label is derived from the same features it scores, so it is advisory only.
type Classifier struct {
	weights [3]float64
	bias    float64
	mean    [3]float64
	scale   [3]float64
}

// NewClassifier trains on population, or returns Heuristic when there are fewer than
// three rows or only one label class.
func NewClassifier(population []Features) Estimator {
	if len(population) < minTrainingRows {
		return Heuristic{}
	}
	positives := 0
	for _, f := range population {
		if label(f) == 1 {
			positives++
		}
	}
	if positives == 0 || positives == len(population) {
		return Heuristic{}
	}

	c := &Classifier{}
	c.fitScaler(population)
	c.train(population)
	return c
}

// Estimate returns the modelled probability of the positive ("returns") class.
func (c *Classifier) Estimate(f Features) float64 {
	return sigmoid(c.logit(c.standardize(f)))
}

func (c *Classifier) fitScaler(rows []Features) {
	n := float64(len(rows))
	for _, f := range rows {
		x := vector(f)
		for j := range x {
			c.mean[j] += x[j] / n
		}
	}
	for _, f := range rows {
		x := vector(f)
		for j := range x {
			d := x[j] - c.mean[j]
			c.scale[j] += d * d / n
		}
	}
	for j := range c.scale {
		c.scale[j] = math.Sqrt(c.scale[j])
		if c.scale[j] == 0 {
			c.scale[j] = 1
		}
	}
}

// train runs batch gradient descent on the mean log-loss with an L2 penalty on the weights.
func (c *Classifier) train(rows []Features) {
	n := float64(len(rows))
	xs := make([][3]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, f := range rows {
		xs[i] = c.standardize(f)
		ys[i] = float64(label(f))
	}

	for iter := 0; iter < trainIterations; iter++ {
		var gradW [3]float64
		gradB := 0.0
		for i, x := range xs {
			diff := sigmoid(c.logit(x)) - ys[i]
			for j := range x {
				gradW[j] += diff * x[j]
			}
			gradB += diff
		}
		for j := range c.weights {
			c.weights[j] -= trainLearningRate * (gradW[j] + l2Penalty*c.weights[j]) / n
		}
		c.bias -= trainLearningRate * gradB / n
	}
}

func (c *Classifier) standardize(f Features) [3]float64 {
	x := vector(f)
	for j := range x {
		x[j] = (x[j] - c.mean[j]) / c.scale[j]
	}
	return x
}

func (c *Classifier) logit(x [3]float64) float64 {
	z := c.bias
	for j := range x {
		z += c.weights[j] * x[j]
	}
	return z
}

func vector(f Features) [3]float64 {
	return [3]float64{float64(f.DaysLeft), float64(f.Attendance7), float64(f.Attendance3)}
}

func label(f Features) int {
	if f.Attendance7 >= returnLabelVisits {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
