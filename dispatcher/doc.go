/*
Package dispatcher provides a strictly single-worker executor for resources that
must only be driven from one goroutine.

The worker creates the session value itself, before any other work is accepted,
and keeps it as a local of its run loop; callers only ever see futures:

	d, err := dispatcher.New(ctx, func(ctx context.Context) (*session, error) {
	    return openSession(ctx)
	}, dispatcher.WithName("registry-client-0"))

	names, err := dispatcher.Call(ctx, d, func(ctx context.Context, s *session) ([]string, error) {
	    return s.client.DatabaseNames(ctx)
	})

	d.Shutdown(ctx, closeSession, 5*time.Second)

Tasks run one at a time in submission order, so every task observes the effects
of all tasks submitted before it. There is one worker and no
cancellation of running tasks.
*/
package dispatcher
