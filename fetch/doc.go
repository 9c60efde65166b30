// Package fetch retrieves raw HTML documents over HTTP.
//
// The [Client] wraps resty over a retryable transport with sane
// defaults (timeout, bounded retries, identifying User-Agent). It
// implements the resolver's Fetcher contract:
//
//	c := fetch.NewClient()
//	body, err := c.Fetch(ctx, "https://en.wikipedia.org/wiki/Fennec_fox")
//
// Non-2xx responses are reported as a [*StatusError] so callers can
// distinguish HTTP failures from transport failures.
package fetch
