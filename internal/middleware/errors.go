package middleware

import "errors"

// Attached to the gin context so rejected requests carry a reason in the request log
var (
	errRateLimited  = errors.New("rate limit exceeded")
	errBodyTooLarge = errors.New("request body too large")
)
