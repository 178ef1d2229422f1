package ward

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"net/url"
	"runtime/debug"
)

// Handler freezes the builder's current snapshot into a compiled handler.
// The closure holds no mutable state and is safe for concurrent, repeated
// invocation by the host router.
//
// Each invocation runs one fixed sequence: extract query, params, and
// body; validate params, then query, then body, short-circuiting on the
// first failing slot; run middleware steps in registration order; invoke
// fn with the validated request view; encode its result. Exactly one
// response is written per invocation, on success or failure.
func (b *Builder) Handler(fn HandlerFunc) http.HandlerFunc {
	cfg := b.cfg // read-only for the handler's lifetime

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Single recovery point for everything the pipeline does not
		// answer directly: decode failures, step errors, business errors,
		// and panics all funnel through cfg.fail.
		defer func() {
			if rec := recover(); rec != nil {
				cfg.logger.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				cfg.fail(w, r, Error(http.StatusInternalServerError, ""))
			}
		}()

		req := &Request{
			Raw:    r,
			Params: cfg.pathParams(r),
			Query:  flattenQuery(r.URL.Query()),
			Data:   map[string]any{},
		}

		body, err := decodeBody(r)
		if err != nil {
			cfg.fail(w, r, err)
			return
		}
		req.Body = body

		slots := []struct {
			name string
			sch  any
			get  func() any
			set  func(any)
		}{
			{"params", cfg.params, func() any { return req.Params }, func(v any) { req.Params = v }},
			{"query", cfg.query, func() any { return req.Query }, func(v any) { req.Query = v }},
			{"body", cfg.body, func() any { return req.Body }, func(v any) { req.Body = v }},
		}

		for _, slot := range slots {
			if slot.sch == nil {
				continue
			}
			out, err := cfg.adapter.Validate(ctx, slot.sch, slot.get())
			if err != nil {
				cfg.fail(w, r, err)
				return
			}
			if !out.OK {
				// Expected, recoverable condition: answered here as a
				// value, never raised to the error handler.
				cfg.logger.Debug().
					Str("slot", slot.name).
					Str("path", r.URL.Path).
					Msg("validation rejected")
				respondJSON(w, http.StatusBadRequest, ErrorResponse{
					Message: "Invalid " + slot.name,
					Errors:  out.Issues,
				})
				return
			}
			slot.set(out.Data)
		}

		for _, step := range cfg.steps {
			frag, err := step(ctx, r)
			if err != nil {
				cfg.fail(w, r, err)
				return
			}
			maps.Copy(req.Data, frag)
		}

		resp, err := fn(ctx, req)
		if err != nil {
			cfg.fail(w, r, err)
			return
		}
		respond(w, resp, http.StatusOK)
	}
}

// fail routes an unexpected error to the configured handler, or to the
// default translation.
func (c *config) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("handler error")
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	writeErrorResponse(w, err)
}

// pathParams resolves the path-parameter map for this invocation: the
// configured source first, then the conventional context key, then empty.
func (c *config) pathParams(r *http.Request) map[string]string {
	if c.source != nil {
		if params := c.source(r); params != nil {
			return params
		}
	}
	if params := PathParams(r.Context()); params != nil {
		return params
	}
	return map[string]string{}
}

// flattenQuery reduces the query string to a flat map. Repeated keys keep
// the last occurrence, consistent with last-write-wins form semantics.
func flattenQuery(values url.Values) map[string]string {
	q := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			q[key] = vals[len(vals)-1]
		}
	}
	return q
}

// decodeBody extracts the request body as a decoded JSON value. GET
// requests are never body-parsed — the slot is an empty object even when
// a body schema is bound. An absent or empty body also decodes to the
// empty object; malformed JSON is fatal for the invocation.
func decodeBody(r *http.Request) (any, error) {
	if r.Method == http.MethodGet {
		return map[string]any{}, nil
	}
	if r.Body == nil || r.ContentLength == 0 {
		return map[string]any{}, nil
	}

	var v any
	err := json.NewDecoder(r.Body).Decode(&v)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, Errorf(http.StatusBadRequest, "invalid JSON body: %v", err)
	}
	return v, nil
}
