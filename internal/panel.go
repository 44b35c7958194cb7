package internal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/sendlater/pkg/htmx"
	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

const defaultCancelWait = 5 * time.Second

// Panel serves the web control panel for a Runner.
//
// Routes:
//
//	GET  /              form and status
//	POST /jobs          Start
//	POST /jobs/cancel   Cancel
//	POST /exit          Exit (cancels the job, then stops the server)
//	GET  /jobs/current  status as JSON or an HTML fragment
//
// POST routes reject cross-origin browser requests with 403, so other sites
// cannot schedule, cancel or stop jobs through the user's browser.
type Panel struct {
	runner     *Runner
	origins    *http.CrossOriginProtection
	credential func(password string) Dispatcher
	location   *time.Location
	cancelWait time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithCredentialDispatcher builds a dispatcher for jobs submitted with a password.
// Without it the password field is ignored and the runner's dispatcher is used.
func WithCredentialDispatcher(fn func(password string) Dispatcher) PanelOption {
	return func(p *Panel) {
		p.credential = fn
	}
}

// WithLocation sets the zone used to read the date and time fields. Defaults to Local.
func WithLocation(loc *time.Location) PanelOption {
	return func(p *Panel) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithCancelWait bounds how long Cancel and Exit wait for an in-flight send.
func WithCancelWait(d time.Duration) PanelOption {
	return func(p *Panel) {
		if d > 0 {
			p.cancelWait = d
		}
	}
}

// NewPanel creates a panel bound to runner.
func NewPanel(runner *Runner, opts ...PanelOption) *Panel {
	p := &Panel{
		runner:     runner,
		origins:    http.NewCrossOriginProtection(),
		location:   time.Local,
		cancelWait: defaultCancelWait,
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Routes implements Handler.
func (p *Panel) Routes(r Router) {
	r.GET("/", p.index)
	r.POST("/jobs", p.start, p.sameOrigin)
	r.POST("/jobs/cancel", p.cancel, p.sameOrigin)
	r.GET("/jobs/current", p.current)
	r.POST("/exit", p.exit, p.sameOrigin)
}

// sameOrigin rejects requests a browser sent on behalf of another origin.
// Requests without Sec-Fetch-Site or Origin headers come from non-browser clients and pass.
func (p *Panel) sameOrigin(next HandlerFunc) HandlerFunc {
	return func(c Context) error {
		if err := p.origins.Check(c.Request()); err != nil {
			c.LogWarn("cross-origin request rejected",
				"origin", c.Header("Origin"),
				"path", c.Request().URL.Path,
			)
			return ErrForbidden("cross-origin request rejected", WithError(err))
		}
		return next(c)
	}
}

// Stopped is closed once Exit was requested. Pass it to StopOn.
func (p *Panel) Stopped() <-chan struct{} {
	return p.stop
}

// formValues echoes the submitted form back into the page. The password is never echoed.
type formValues struct {
	From     string
	To       string
	Subject  string
	Body     string
	Attach   string
	Markdown bool
	Every    string
	AtDate   string
	AtTime   string
	Daily    string
	Cron     string
}

type statusView struct {
	Status Status
	Error  string
}

type pageView struct {
	Form   formValues
	Status statusView
}

func readForm(c Context) formValues {
	return formValues{
		From:     strings.TrimSpace(c.Form("from")),
		To:       c.Form("to"),
		Subject:  c.Form("subject"),
		Body:     c.Form("body"),
		Attach:   strings.TrimSpace(c.Form("attach")),
		Markdown: c.Form("markdown") != "",
		Every:    c.Form("every"),
		AtDate:   c.Form("at_date"),
		AtTime:   c.Form("at_time"),
		Daily:    c.Form("daily"),
		Cron:     c.Form("cron"),
	}
}

func (f formValues) job() mailer.Job {
	return mailer.Job{
		Sender:         f.From,
		Recipients:     mailer.Recipients(f.To),
		Subject:        f.Subject,
		Body:           f.Body,
		AttachmentPath: f.Attach,
		Markdown:       f.Markdown,
	}
}

func (f formValues) spec() trigger.Spec {
	return trigger.Spec{
		Every:  f.Every,
		AtDate: f.AtDate,
		AtTime: f.AtTime,
		Daily:  f.Daily,
		Cron:   f.Cron,
	}
}

func (p *Panel) index(c Context) error {
	return c.Render(http.StatusOK, view{name: "page", data: pageView{
		Status: statusView{Status: p.runner.Status()},
	}})
}

func (p *Panel) start(c Context) error {
	form := readForm(c)

	policy, err := form.spec().Policy(p.location)
	if err != nil {
		return ErrUnprocessable(err.Error(), WithError(err))
	}

	var opts []StartOption
	if password := c.Form("password"); password != "" && p.credential != nil {
		opts = append(opts, UsingDispatcher(p.credential(password)))
	}

	status, err := p.runner.Start(c, form.job(), policy, opts...)
	switch {
	case errors.Is(err, ErrJobActive):
		return ErrConflict("a job is already scheduled, cancel it first", WithError(err))
	case err != nil:
		return ErrUnprocessable(err.Error(), WithError(err))
	}

	c.LogInfo("job started", "job_id", status.JobID, "policy", status.Policy)
	return p.respond(c, http.StatusCreated, status, "job-started")
}

func (p *Panel) cancel(c Context) error {
	if _, err := p.runner.Cancel(); err != nil {
		return ErrConflict("no job is scheduled", WithError(err))
	}

	ctx, cancel := context.WithTimeout(c, p.cancelWait)
	defer cancel()
	if err := p.runner.Wait(ctx); err != nil {
		c.LogWarn("job still sending after cancel", "error", err)
	}

	return p.respond(c, http.StatusOK, p.runner.Status(), "job-cancelled")
}

func (p *Panel) current(c Context) error {
	return p.respond(c, http.StatusOK, p.runner.Status(), "")
}

func (p *Panel) exit(c Context) error {
	status := p.runner.Status()
	cancelled := status.Active()

	ctx, cancel := context.WithTimeout(c, p.cancelWait)
	defer cancel()
	if err := p.runner.Shutdown(ctx); err != nil {
		c.LogWarn("job still sending at exit", "error", err)
	}

	p.stopOnce.Do(func() { close(p.stop) })

	if c.WantsJSON() {
		return c.JSON(http.StatusOK, p.runner.Status())
	}
	return c.Render(http.StatusOK, view{name: "bye", data: struct{ Cancelled bool }{cancelled}})
}

// respond writes status as JSON, as the status fragment for HTMX, or redirects a plain form post.
// A non-empty event is dispatched on the HTMX client.
func (p *Panel) respond(c Context, code int, status Status, event string) error {
	switch {
	case c.WantsJSON():
		return c.JSON(code, status)
	case c.IsHTMX():
		if event != "" {
			htmx.Trigger(c.Response(), event)
		}
		return c.Render(code, view{name: "status", data: statusView{Status: status}})
	case c.Request().Method == http.MethodPost:
		return c.Redirect(http.StatusSeeOther, "/")
	default:
		return c.Render(code, view{name: "status", data: statusView{Status: status}})
	}
}

// ErrorHandler renders handler errors in the panel's status area.
// Use it with WithErrorHandler.
func (p *Panel) ErrorHandler(c Context, err error) error {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if httpErr := AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
		msg = httpErr.Message
	}

	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "error", err)
	}

	sv := statusView{Status: p.runner.Status(), Error: msg}
	switch {
	case c.WantsJSON():
		return c.JSON(code, map[string]any{"error": msg, "status": sv.Status})
	case c.IsHTMX():
		htmx.Retarget(c.Response(), "#status")
		return c.Render(code, view{name: "status", data: sv})
	default:
		return c.Render(code, view{name: "page", data: pageView{Form: readForm(c), Status: sv}})
	}
}
