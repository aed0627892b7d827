package loader

import "math/rand"

// TrainTestSplit splits row indices 0..n-1 into train and test sets by ratio.
func TrainTestSplit(rng *rand.Rand, n int, testRatio float64) (train, test []int) {
	indices := rng.Perm(n)
	nTest := int(float64(n) * testRatio)
	return indices[nTest:], indices[:nTest]
}

// StratifiedSplit splits row indices so that each class of y keeps its
// share in the test set.
func StratifiedSplit(rng *rand.Rand, y []float64, testRatio float64) (train, test []int) {
	byClass := map[float64][]int{}
	var classes []float64
	for i, v := range y {
		if _, ok := byClass[v]; !ok {
			classes = append(classes, v)
		}
		byClass[v] = append(byClass[v], i)
	}
	for _, c := range classes {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(float64(len(idx)) * testRatio)
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	return train, test
}
