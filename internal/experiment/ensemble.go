package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/tonksim/internal/sim"
)

// RunEnsemble runs n independent replicas of cfg concurrently, replica i
// seeded with cfg.Seed+i. Each replica gets fresh metrics from newMetrics.
func RunEnsemble(ctx context.Context, cfg Config, n int, newMetrics func() []sim.Metric) ([]*sim.Result, error) {
	results := make([]*sim.Result, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = cfg.Seed + int64(idx)

			exp := New(cfgCopy)
			if err := exp.Setup(nil, newMetrics()); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
