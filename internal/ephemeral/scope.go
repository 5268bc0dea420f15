package ephemeral

import "context"

type outcome struct {
	err      error
	panicked bool
	value    any
}

// Scope runs fn and guarantees m.CleanupAll before it returns, on every exit
// path: normal return, error, panic (re-raised after cleanup) and
// cancellation of ctx by an interrupt signal.
//
// fn runs on its own goroutine. When ctx is cancelled while fn is still
// blocked, Scope cleans up and returns ctx's error without waiting for fn;
// nodes fn registers after that point are left to session expiry.
func Scope(ctx context.Context, m *Manager, fn func(ctx context.Context) error) error {
	done := make(chan outcome, 1)
	go func() {
		var out outcome
		defer func() {
			if r := recover(); r != nil {
				out = outcome{panicked: true, value: r}
			}
			done <- out
		}()
		out.err = fn(ctx)
	}()

	select {
	case out := <-done:
		return finish(ctx, m, out)
	case <-ctx.Done():
		select {
		case out := <-done:
			return finish(ctx, m, out)
		default:
		}
		m.CleanupAll(ctx)
		return ctx.Err()
	}
}

func finish(ctx context.Context, m *Manager, out outcome) error {
	m.CleanupAll(ctx)
	if out.panicked {
		panic(out.value)
	}
	return out.err
}
