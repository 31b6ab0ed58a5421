package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bamsammich/ffind/internal/index"
	"github.com/bamsammich/ffind/internal/search"
)

// resultBuffer bounds how many results may wait between producers and the
// emitting goroutine.
const resultBuffer = 256

// Submitter is the part of the search pool Execute needs.
type Submitter interface {
	Submit(ctx context.Context, job search.Job) error
}

// Summary describes a finished query.
type Summary struct {
	Elapsed    time.Duration
	Candidates int64 // records that passed every metadata predicate
	Jobs       int64 // content search jobs created
	Results    int64 // results handed to emit
	Truncated  bool  // the result limit was reached
}

// Execute runs q against store, streaming results to emit in the order they
// become available. Metadata-only queries emit directly from the index walk
// and never touch pool. emit is only ever called from one goroutine; an error
// from it aborts the query.
func Execute(ctx context.Context, store *index.Store, pool Submitter, q *Query, emit func(search.Result) error) (Summary, error) {
	start := time.Now()
	plan := NewPlan(q, store.Roots())

	qctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(qctx)

	results := make(chan search.Result, resultBuffer)
	var sum Summary

	// send is used by the walker and, through Job.Emit, by search workers.
	send := func(r search.Result) bool {
		select {
		case results <- r:
			return true
		case <-gctx.Done():
			return false
		}
	}

	// produced closes once the walk has returned and every job it
	// submitted has finished. Jobs still queued behind other queries when
	// ctx ends are not waited for; the pool drops them when it reaches them.
	var jobs sync.WaitGroup
	produced := make(chan struct{})
	g.Go(func() error {
		err := walk(gctx, store, pool, q, plan, send, &jobs, &sum)
		go func() {
			jobs.Wait()
			close(produced)
		}()
		return err
	})

	g.Go(func() error {
		limit := int64(q.spec.Limit)
		deliver := func(r search.Result) error {
			if err := emit(r); err != nil {
				return err
			}
			sum.Results++
			if limit > 0 && sum.Results >= limit {
				sum.Truncated = true
				cancel()
			}
			return nil
		}
		for {
			select {
			case r := <-results:
				if sum.Truncated {
					continue
				}
				if err := deliver(r); err != nil {
					return err
				}
			case <-produced:
				// No more sends can happen; empty the buffer.
				for {
					select {
					case r := <-results:
						if sum.Truncated {
							continue
						}
						if err := deliver(r); err != nil {
							return err
						}
					default:
						return nil
					}
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	err := g.Wait()
	sum.Elapsed = time.Since(start)
	if sum.Truncated && ctx.Err() == nil && errors.Is(err, context.Canceled) {
		err = nil
	}
	return sum, err
}

func walk(
	ctx context.Context,
	store *index.Store,
	pool Submitter,
	q *Query,
	plan Plan,
	send func(search.Result) bool,
	jobs *sync.WaitGroup,
	sum *Summary,
) error {
	for _, st := range plan.Starts {
		cur := store.LookupSubtree(st.Prefix)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk := cur.Next()
			if chunk == nil {
				break
			}
			for i := range chunk {
				rec := &chunk[i]
				// Nested roots are walked under their own start.
				if rec.Root != st.Root {
					continue
				}
				rel, _ := rec.Path.Rel(st.RootPath)
				if !plan.accept(&candidate{rec: rec, rel: rel}) {
					continue
				}
				sum.Candidates++

				if !plan.Content {
					if !send(search.Result{Path: rec.Path.String(), IsDir: rec.IsDir()}) {
						return ctx.Err()
					}
					continue
				}

				jobs.Add(1)
				err := pool.Submit(ctx, search.Job{
					Ctx:     ctx,
					Matcher: q.matcher,
					Emit:    send,
					Done:    jobs.Done,
					Path:    rec.Path.String(),
					QueryID: q.ID,
					Size:    rec.Size,
					Before:  q.spec.Before,
					After:   q.spec.After,
				})
				if err != nil {
					jobs.Done()
					return err
				}
				sum.Jobs++
			}
		}
	}
	return nil
}
