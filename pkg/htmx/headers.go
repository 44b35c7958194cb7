package htmx

// Request headers sent by htmx.
const (
	HeaderRequest = "HX-Request"
	HeaderTarget  = "HX-Target"
)

// Response headers understood by htmx.
const (
	HeaderRedirect = "HX-Redirect"
	HeaderRetarget = "HX-Retarget"
	HeaderReswap   = "HX-Reswap"
	HeaderTrigger  = "HX-Trigger"
)
