package optim

// SGD is mini-batch gradient descent with a fixed learning rate and an
// optional L2 penalty on the weights. The bias is never penalized.
type SGD struct {
	LearningRate float64
	L2           float64
}

func NewSGD(lr, l2 float64) *SGD { return &SGD{LearningRate: lr, L2: l2} }

// Step applies one update to the weights w and the bias b from the batch
// gradients gw and gb.
func (o *SGD) Step(w []float64, b *float64, gw []float64, gb float64) {
	for j := range w {
		w[j] -= o.LearningRate * (gw[j] + o.L2*w[j])
	}
	*b -= o.LearningRate * gb
}
