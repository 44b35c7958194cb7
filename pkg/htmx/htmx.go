package htmx

import (
	"net/http"
	"strings"
)

// IsHTMX returns true if the request originated from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// Target returns the id of the element the request will be swapped into.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// Trigger asks the client to dispatch events after the response is received.
// Events accumulate across calls.
func Trigger(w http.ResponseWriter, events ...string) {
	if len(events) == 0 {
		return
	}
	if prev := w.Header().Get(HeaderTrigger); prev != "" {
		events = append([]string{prev}, events...)
	}
	w.Header().Set(HeaderTrigger, strings.Join(events, ", "))
}

// Retarget swaps the response into selector using the innerHTML strategy,
// regardless of the element that issued the request.
func Retarget(w http.ResponseWriter, selector string) {
	w.Header().Set(HeaderRetarget, selector)
	w.Header().Set(HeaderReswap, "innerHTML")
}
