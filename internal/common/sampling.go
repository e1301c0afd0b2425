package common

import "golang.org/x/exp/rand"

// ReservoirSample picks k items of source uniformly at random in a single pass.
// When source holds k items or fewer, all of them are returned in order.
func ReservoirSample[T any](rng *rand.Rand, source []T, k int) []T {
	if k <= 0 {
		return nil
	}
	if len(source) <= k {
		return append([]T(nil), source...)
	}

	samples := make([]T, k)
	copy(samples, source[:k])

	for i := k; i < len(source); i++ {
		if j := rng.Intn(i + 1); j < k {
			samples[j] = source[i]
		}
	}

	return samples
}

// ReservoirSampleOne picks one item of source uniformly at random.
// ok is false when source is empty.
func ReservoirSampleOne[T any](rng *rand.Rand, source []T) (item T, ok bool) {
	for i := range source {
		if rng.Intn(i+1) == 0 {
			item, ok = source[i], true
		}
	}
	return item, ok
}
