// Package health provides HTTP handlers for health probes and a programmatic check runner.
//
// [LivenessHandler] always answers OK while the process runs. [ReadinessHandler]
// executes a set of named [Checks] in parallel and answers 503 if any fails.
// [Run] executes the same checks without HTTP, which the CLI uses for "send --check".
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"smtp": smtp.Healthcheck(smtpCfg),
//		"s3":   s3.Healthcheck(),
//	}, health.WithTimeout(3*time.Second)))
//
// Handlers respond with plain text ("OK" / "Service Unavailable") unless the client
// asks for JSON with an Accept: application/json header or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "smtp": {"status": "unhealthy", "error": "mailer: network failure\ndial tcp: connection refused"},
//	    "s3":   {"status": "healthy"}
//	  }
//	}
//
// A check that outlives the timeout is reported with [ErrCheckTimeout].
package health
