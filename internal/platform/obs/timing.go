package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the request ID assigned by the API middleware.
const RequestIDKey ctxKey = "req_id"

// RequestID returns the request ID from ctx, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration (and failure, if any) of a named operation:
//
//	defer obs.Time(ctx, "sky.Quotes")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
