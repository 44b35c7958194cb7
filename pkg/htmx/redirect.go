package htmx

import "net/http"

// Redirect performs a redirect for both htmx and regular requests.
// htmx expects a 200 with HX-Redirect and navigates client side.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
