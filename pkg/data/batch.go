package data

import "context"

// Sample represents a single data point.
type Sample struct {
	X []float64
	Y float64
}

// Batch represents a collection of data points.
type Batch struct {
	X [][]float64
	Y []float64
}

// StreamSamples emits (X[i], y[i]) for each i in order. The channel is
// closed when all samples are sent or ctx is done.
func StreamSamples(ctx context.Context, X [][]float64, y []float64, order []int) <-chan Sample {
	out := make(chan Sample)
	go func() {
		defer close(out)
		for _, i := range order {
			select {
			case <-ctx.Done():
				return
			case out <- Sample{X: X[i], Y: y[i]}:
			}
		}
	}()
	return out
}

// Batcher groups samples from in into mini-batches of batchSize. The last
// batch may be smaller. The output channel is closed when in is drained or
// ctx is done.
func Batcher(ctx context.Context, in <-chan Sample, batchSize int) <-chan Batch {
	out := make(chan Batch)
	go func() {
		defer close(out)

		var X [][]float64
		var Y []float64
		send := func() bool {
			select {
			case <-ctx.Done():
				return false
			case out <- Batch{X: X, Y: Y}:
				X, Y = nil, nil
				return true
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-in:
				if !ok {
					if len(Y) > 0 {
						send()
					}
					return
				}
				X = append(X, s.X)
				Y = append(Y, s.Y)
				if len(Y) == batchSize && !send() {
					return
				}
			}
		}
	}()
	return out
}
