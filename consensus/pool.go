package consensus

import (
	"context"
	"sync"
)

// Job is a set of sequences that should be reduced to a single consensus.
// Index is carried through to the Result so callers can restore input order.
type Job struct {
	Index int
	Name  string
	Seqs  []string
}

// Result is the outcome of a Job. Err is non-nil when no consensus could be built.
type Result struct {
	Index     int
	Name      string
	Consensus string
	Err       error
}

// GoBuild starts threads workers that build a consensus for each job received
// on jobs. Results are sent in completion order and the returned channel is
// closed once jobs is closed and all work has finished. A failure in one job
// does not affect the others.
func GoBuild(ctx context.Context, aligner SequenceAligner, jobs <-chan Job, threads int) <-chan Result {
	if threads < 1 {
		threads = 1
	}
	wg := new(sync.WaitGroup)
	results := make(chan Result, threads)
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go spawnThread(ctx, aligner, jobs, results, wg)
	}

	go func(*sync.WaitGroup) {
		wg.Wait()
		close(results)
	}(wg)

	return results
}

func spawnThread(ctx context.Context, aligner SequenceAligner, jobs <-chan Job, results chan<- Result, wg *sync.WaitGroup) {
	var seq string
	var err error
	for j := range jobs {
		if err = ctx.Err(); err == nil {
			seq, err = Build(ctx, aligner, j.Seqs)
		}
		results <- Result{Index: j.Index, Name: j.Name, Consensus: seq, Err: err}
		seq = ""
	}
	wg.Done()
}
