// Package middlewares provides HTTP middleware for the sendlater control panel.
//
// Recover converts handler panics into a *PanicError so the panel's error handler
// renders a 500 instead of dropping the connection. RequestID tags every request
// with an ID that RequestIDExtractor copies into log records.
//
//	app := internal.New(
//		internal.WithLogger("panel", middlewares.RequestIDExtractor()),
//		internal.WithMiddleware(
//			middlewares.RequestID(),
//			middlewares.Recover(),
//		),
//	)
package middlewares
