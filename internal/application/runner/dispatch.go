package runner

import (
	"context"
	"sync"

	"gatelab/pkg/domain"
)

// dispatchParallel fans out every request at once and joins on completion.
// Results land in a pre-sized slice indexed by submission position, so the
// returned order matches submission order regardless of completion order.
func (r *Runner) dispatchParallel(ctx context.Context, experiment string, reqs []domain.Request) []domain.CallRecord {
	records := make([]domain.CallRecord, len(reqs))

	r.metrics.SetInflightCalls(len(reqs))
	defer r.metrics.SetInflightCalls(0)

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req domain.Request) {
			defer wg.Done()
			records[i] = r.call(ctx, experiment, req)
		}(i, req)
	}
	wg.Wait()

	return records
}
