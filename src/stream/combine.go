package stream

import "context"

// CombineLatest merges two live streams. Each time either side delivers a value,
// and both sides have delivered at least once, combine is called with the latest
// pair and its result is emitted. When a and b deliver at the same time, a goes first.
//
// The merged stream ends when ctx is done, when it is cancelled, when either input
// ends, or when combine fails. Both inputs are cancelled whenever it ends.
func CombineLatest[A, B, R any](ctx context.Context, name string, a *Stream[A], b *Stream[B], combine func(A, B) (R, error)) *Stream[R] {
	out, octx := newStream[R](ctx, name)
	go runCombineLatest(octx, out, a, b, combine)
	return out
}

func runCombineLatest[A, B, R any](ctx context.Context, out *Stream[R], a *Stream[A], b *Stream[B], combine func(A, B) (R, error)) {
	defer a.Cancel()
	defer b.Cancel()

	var (
		lastA      A
		lastB      B
		hasA, hasB bool
	)

	for {
		select {
		case v := <-a.values:
			lastA, hasA = v, true
		default:
			select {
			case <-ctx.Done():
				out.finish(ctx.Err())
				return
			case v := <-a.values:
				lastA, hasA = v, true
			case v := <-b.values:
				lastB, hasB = v, true
			case <-a.done:
				out.finish(a.err)
				return
			case <-b.done:
				out.finish(b.err)
				return
			}
		}

		if !hasA || !hasB {
			continue
		}

		r, err := combine(lastA, lastB)
		if err != nil {
			out.finish(err)
			return
		}

		select {
		case out.values <- r:
		case <-ctx.Done():
			out.finish(ctx.Err())
			return
		}
	}
}
