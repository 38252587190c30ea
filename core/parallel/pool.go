package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny slices from being split into one goroutine per element.
const minChunk = 1024

// Workers normalizes a configured worker count; values <= 0 select GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Task is a unit of work executed by Run.
type Task func(ctx context.Context) error

// Run executes tasks with at most workers running at once and waits for all of them.
// The first error cancels ctx for the remaining tasks and is returned.
func Run(ctx context.Context, workers int, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(workers))

	for _, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx)
		})
	}

	return g.Wait()
}

// Map returns fn applied to every element of in, preserving order.
// The slice is split into contiguous chunks, one per worker.
func Map[In, Out any](ctx context.Context, workers int, in []In, fn func(i int, v In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(in))
	err := Chunks(ctx, workers, len(in), func(_ context.Context, start, end int) error {
		for i := start; i < end; i++ {
			v, err := fn(i, in[i])
			if err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Chunks splits [0, n) into contiguous ranges and runs fn on each of them.
// A single range runs on the calling goroutine.
func Chunks(ctx context.Context, workers, n int, fn func(ctx context.Context, start, end int) error) error {
	ranges := Ranges(workers, n)
	if len(ranges) == 0 {
		return ctx.Err()
	}
	if len(ranges) == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, ranges[0][0], ranges[0][1])
	}

	tasks := make([]Task, len(ranges))
	for i, r := range ranges {
		tasks[i] = func(ctx context.Context) error {
			return fn(ctx, r[0], r[1])
		}
	}
	return Run(ctx, workers, tasks...)
}

// Ranges partitions [0, n) into at most workers half-open ranges of similar size.
func Ranges(workers, n int) [][2]int {
	if n == 0 {
		return nil
	}
	workers = Workers(workers)
	chunks := (n + minChunk - 1) / minChunk
	if chunks > workers {
		chunks = workers
	}
	size := (n + chunks - 1) / chunks

	ranges := make([][2]int, 0, chunks)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}
