package api

import "context"

// Loading отмечает начало и конец каждого запроса в трекере.
// Done вызывается ровно один раз при любом исходе, включая панику.
func Loading(tracker Tracker) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, r *Request) (*Response, error) {
			tracker.Start()
			defer tracker.Done()
			return next(ctx, r)
		}
	}
}
