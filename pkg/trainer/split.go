package trainer

import (
	"math"
	"math/rand"
)

// Split configuration shared by every training run: a fixed ratio and
// seed keep partitions reproducible across invocations.
const (
	TestRatio = 0.2
	SplitSeed = 42
)

// splitIndices partitions row indices uniformly at random with a
// seeded shuffle. The test partition takes ceil(n*ratio) rows; no
// stratification and no ordering guarantee.
func splitIndices(n int, testRatio float64, seed int64) (train, test []int) {
	rnd := rand.New(rand.NewSource(seed))
	perm := rnd.Perm(n)
	nTest := int(math.Ceil(float64(n) * testRatio))
	if nTest > n {
		nTest = n
	}
	return perm[nTest:], perm[:nTest]
}
