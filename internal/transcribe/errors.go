package transcribe

import (
	"context"
	"errors"
	"strings"
)

// ErrQuotaExhausted marks the one run-fatal condition: the remote service
// refused us for quota reasons. Everything else is contained at the item or
// chunk level.
var ErrQuotaExhausted = errors.New("remote quota exhausted")

var quotaMarkers = []string{
	"429",
	"quota",
	"RESOURCE_EXHAUSTED",
	"insufficient_quota",
}

var transientMarkers = []string{
	"timeout",
	"deadline exceeded",
	"connection reset",
	"connection refused",
	"broken pipe",
	"unexpected EOF",
	"500",
	"502",
	"503",
	"504",
}

// IsQuota reports whether err is the quota-exhaustion condition.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	msg := err.Error()
	for _, m := range quotaMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// IsTransient reports whether err looks like a transport-level failure
// worth one more attempt. Quota errors and context cancellation are never
// transient.
func IsTransient(err error) bool {
	if err == nil || IsQuota(err) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
