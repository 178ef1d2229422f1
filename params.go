package ward

import (
	"context"
	"net/http"
)

// ParamSource extracts the path-parameter map from a request. Host
// adapters provide concrete sources (chiward.ParamSource, MuxParams);
// returning nil falls through to the conventional context key.
type ParamSource func(r *http.Request) map[string]string

type pathParamsKey struct{}

// WithPathParams returns a context carrying the path-parameter map under
// ward's conventional key. Host adapters use it to hand params to a
// compiled handler without a ParamSource.
func WithPathParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, pathParamsKey{}, params)
}

// SetPathParams stores the path-parameter map on the request. For use in
// host adapters and middleware.
func SetPathParams(r *http.Request, params map[string]string) *http.Request {
	return r.WithContext(WithPathParams(r.Context(), params))
}

// PathParams retrieves the path-parameter map from the context, or nil.
func PathParams(ctx context.Context) map[string]string {
	params, _ := ctx.Value(pathParamsKey{}).(map[string]string)
	return params
}

// MuxParams returns a ParamSource for net/http ServeMux patterns. Each
// named wildcard is read with r.PathValue, so the names must match the
// pattern the handler is registered under.
func MuxParams(names ...string) ParamSource {
	return func(r *http.Request) map[string]string {
		params := make(map[string]string, len(names))
		for _, name := range names {
			if v := r.PathValue(name); v != "" {
				params[name] = v
			}
		}
		return params
	}
}
