package ward

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// Step is one request-scoped middleware step. It derives a context
// fragment from the raw request (loading a session, checking a token)
// and may perform I/O. Steps run strictly in registration order; each
// fragment is shallow-merged into the accumulated Data map, later keys
// overwriting earlier ones, before the next step starts. An error aborts
// the pipeline.
type Step func(ctx context.Context, r *http.Request) (map[string]any, error)

// HandlerFunc is the business handler invoked once the pipeline has
// validated the request. The returned value is encoded as the JSON
// response; a returned error is translated by the error handler.
type HandlerFunc func(ctx context.Context, req *Request) (any, error)

// Request is the validated view of one invocation. Params, Query, and
// Body hold each slot's normalized value when a schema was bound, or the
// raw extracted value otherwise. Data is the merged output of the
// middleware steps.
type Request struct {
	Raw    *http.Request
	Params any
	Query  any
	Body   any
	Data   map[string]any
}

// config is one immutable builder snapshot. Chained calls copy it by
// value; the steps slice is cloned on append so derived builders never
// alias each other's backing array.
type config struct {
	params any
	query  any
	body   any
	steps  []Step

	adapter Adapter
	onError ErrorHandler
	source  ParamSource
	logger  zerolog.Logger
}

// Builder accumulates schemas and middleware steps, then compiles them
// into a single http.HandlerFunc with Handler. Builders are immutable:
// every chained call returns a new instance, so a partially-configured
// builder can serve as a shared template for many routes.
type Builder struct {
	cfg config
}

// Option configures a Builder at construction time.
type Option func(*config)

// WithAdapter selects the validation engine. The default interprets
// schemas from the bundled schema subpackage.
func WithAdapter(a Adapter) Option {
	return func(c *config) {
		c.adapter = a
	}
}

// WithErrorHandler sets a custom translation from unexpected errors to
// responses. Validation failures never reach it; they are answered
// directly at the point of detection.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.onError = h
	}
}

// WithParamSource sets how path parameters are extracted from a request.
// Without one, the compiled handler looks for a map stored in the request
// context under ward's conventional key (see SetPathParams).
func WithParamSource(s ParamSource) Option {
	return func(c *config) {
		c.source = s
	}
}

// WithLogger sets the logger used for recovered panics and error-path
// diagnostics. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New creates a Builder with the given options.
func New(opts ...Option) *Builder {
	cfg := config{
		adapter: DefaultAdapter{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{cfg: cfg}
}

// Params binds a schema for the path-parameter slot. Binding the same
// slot twice replaces the earlier schema; last write wins.
func (b *Builder) Params(sch any) *Builder {
	cfg := b.cfg
	cfg.params = sch
	return &Builder{cfg: cfg}
}

// Query binds a schema for the query-string slot. Last write wins.
func (b *Builder) Query(sch any) *Builder {
	cfg := b.cfg
	cfg.query = sch
	return &Builder{cfg: cfg}
}

// Body binds a schema for the JSON-body slot. Last write wins. GET
// requests are never body-parsed; their body schema sees an empty object.
func (b *Builder) Body(sch any) *Builder {
	cfg := b.cfg
	cfg.body = sch
	return &Builder{cfg: cfg}
}

// Use appends a middleware step to the pipeline.
func (b *Builder) Use(step Step) *Builder {
	cfg := b.cfg
	steps := make([]Step, len(b.cfg.steps), len(b.cfg.steps)+1)
	copy(steps, b.cfg.steps)
	cfg.steps = append(steps, step)
	return &Builder{cfg: cfg}
}
