package source

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kakarot0105/JobBot/internal/model"
)

// requestTimeout bounds every outbound provider request. A slow provider
// delays the coordinator's return by at most this much and never blocks the
// other sources.
const requestTimeout = 15 * time.Second

const userAgent = "JobBot/1.0"

// NewHTTPClient returns the client shared by all adapters.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// httpStatusError builds the HTTPError for a non-success provider response,
// capturing Retry-After so the retry layer can honor it.
func httpStatusError(resp *http.Response, err error) *model.HTTPError {
	return &model.HTTPError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		Err:        err,
	}
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// matchesAny reports whether any keyword appears case-insensitively in any
// of the haystacks. Adapters whose upstream API cannot filter by keyword
// (RemoteOK, Arbeitnow) use this to pre-filter before normalization.
func matchesAny(keywords []string, haystacks ...string) bool {
	for _, kw := range keywords {
		for _, h := range haystacks {
			if containsFold(h, kw) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
