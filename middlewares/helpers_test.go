package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/sendlater/internal"
)

// routes registers a single GET / handler.
type routes internal.HandlerFunc

func (h routes) Routes(r internal.Router) {
	r.GET("/", internal.HandlerFunc(h))
}

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
