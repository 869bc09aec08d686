package watch

import "context"

// Result is one evaluation of a watched query.
type Result[T any] struct {
	Value T
	Err   error
}

// Watch evaluates query immediately and again after every change to the given
// tables. The returned channel holds at most one pending result; a newer result
// replaces an unread one. It is closed once ctx is done.
func Watch[T any](ctx context.Context, hub *Hub, query func(context.Context) (T, error), tables ...Table) <-chan Result[T] {
	out := make(chan Result[T], 1)
	sub := hub.Subscribe(tables...)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			v, err := query(ctx)
			if ctx.Err() != nil {
				return
			}

			replace(out, Result[T]{Value: v, Err: err})

			select {
			case <-ctx.Done():
				return
			case <-sub.C():
			}
		}
	}()

	return out
}

// replace sends r, dropping a stale unread value first. It relies on being
// the channel's only sender.
func replace[T any](out chan Result[T], r Result[T]) {
	select {
	case out <- r:
		return
	default:
	}

	select {
	case <-out:
	default:
	}

	out <- r
}
