package downloader

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// RunLimited calls fn for every index in [0, n) with at most limit calls
// running at once and waits for all of them. The first error stops any call
// that has not started yet; calls already running finish with ctx and the
// first error is returned.
func RunLimited(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error) error {
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			// a slot may open up only because another call failed
			if gctx.Err() != nil {
				return nil
			}
			return fn(ctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

func copyWithProgress(dst io.Writer, src io.Reader, progress func(done int64)) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		nr, er := src.Read(buf)

		if nr > 0 {
			nw, ew := dst.Write(buf[0:nr])

			if nw > 0 {
				total += int64(nw)
				if progress != nil {
					progress(total)
				}
			}

			if ew != nil {
				return total, ew
			}

			if nr != nw {
				return total, io.ErrShortWrite
			}
		}

		if er != nil {
			if er == io.EOF {
				break
			}
			return total, er
		}
	}

	return total, nil
}
