package voxray

import (
	"math/rand"
	"runtime"
	"sync"
	"time"
)

// EstimateContribution averages trials single-light stochastic samples of the
// direct light at p, spread over all CPUs. A zero seed is time based.
func EstimateContribution(m *LightManager, p, n Vec3, trials int, seed int64) Vec3 {
	if trials <= 0 {
		return Vec3{}
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	per, rem := trials/workers, trials%workers
	var wg sync.WaitGroup
	sums := make(chan Vec3, workers)

	for w := 0; w < workers; w++ {
		k := per
		if w < rem {
			k++
		}
		if k == 0 {
			continue
		}
		wg.Add(1)
		go func(wid, cnt int) {
			defer wg.Done()
			// independent RNG per worker
			rng := rand.New(rand.NewSource(seed ^ int64(uint64(wid)*0x9e3779b97f4a7c15)))
			var local Vec3
			for i := 0; i < cnt; i++ {
				local = local.Add(m.StochasticContribution(p, n, rng))
			}
			sums <- local
		}(w, k)
	}

	wg.Wait()
	close(sums)

	var total Vec3
	for s := range sums {
		total = total.Add(s)
	}
	return total.Mul(1 / Real(trials))
}
