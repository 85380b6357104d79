// Package health exposes liveness and readiness probe handlers for the
// HTTP transport. Readiness tracks whether a Salesforce session has been
// established, so orchestrators hold traffic until the org is reachable.
package health

import (
	"net/http"
	"sync/atomic"
)

type Checker struct {
	ready  atomic.Bool
	reason atomic.Value
}

func NewChecker() *Checker {
	c := &Checker{}
	c.reason.Store("salesforce session not established")
	return c
}

// SetReady marks the server ready to take traffic. The reason is reported by
// the readiness probe while not ready; it is cleared when ready is true.
func (c *Checker) SetReady(ready bool, reason string) {
	if ready {
		reason = ""
	}
	c.reason.Store(reason)
	c.ready.Store(ready)
}

func (c *Checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (c *Checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if c.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	reason, _ := c.reason.Load().(string)
	if reason == "" {
		reason = "not ready"
	}
	_, _ = w.Write([]byte(reason))
}
