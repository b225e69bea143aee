// Package optim holds the gradient-descent optimizers used by the
// iterative models.
package optim

// SGD is a plain gradient descent optimizer with a fixed learning rate.
type SGD struct{ LearningRate float64 }

func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// Step updates weights in place from the accumulated gradients.
func (o *SGD) Step(weights, grads []float64) {
	for i := range weights {
		weights[i] -= o.LearningRate * grads[i]
	}
}
