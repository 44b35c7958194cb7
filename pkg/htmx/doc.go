// Package htmx detects htmx requests and sets the response headers the control
// panel relies on.
//
// htmx does not swap non-2xx responses, so handlers that render fragments for
// htmx should answer with 200 and use Retarget to steer error fragments:
//
//	if htmx.IsHTMX(r) {
//		htmx.Retarget(w, "#status")
//		htmx.Trigger(w, "job-failed")
//	}
//
// Redirect sends HX-Redirect to htmx clients and a regular 3xx otherwise.
package htmx
