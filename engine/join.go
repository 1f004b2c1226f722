package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// collect runs fetch for every index in [0, n) concurrently and returns the
// results in index order. The first failure cancels the context handed to the
// remaining fetches and is returned once all of them have stopped.
func collect[T any](
	ctx context.Context,
	limit int,
	n int,
	fetch func(ctx context.Context, i int) (T, error),
) ([]T, error) {
	out := make([]T, n)

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		i := i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			v, err := fetch(gctx, i)
			if err != nil {
				return err
			}

			out[i] = v

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
