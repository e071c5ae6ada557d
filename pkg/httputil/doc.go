// Package httputil fetches datasets over HTTP.
//
// [Client] issues GET requests with a timeout and a size limit, classifies
// failures with the codes in pkg/errors and retries transient ones through
// [Backoff]:
//
//	c := httputil.NewClient(30 * time.Second)
//	body, ctype, err := c.Fetch(ctx, "https://plans.example.com/site-a.csv")
//
// Only errors wrapped in [RetryableError] are retried: transport failures,
// 429 and 5xx responses. Everything else is returned on the first attempt.
package httputil
