// Package chiward mounts ward handlers on go-chi routers.
package chiward

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wardhttp/ward"
)

// ParamSource returns a ward.ParamSource backed by chi's route context,
// so compiled handlers registered on a chi router see its URL params:
//
//	b := ward.New(ward.WithParamSource(chiward.ParamSource()))
//	r.Get("/users/{id}", b.Params(idSchema).Handler(getUser))
func ParamSource() ward.ParamSource {
	return func(r *http.Request) map[string]string {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return nil
		}

		params := make(map[string]string, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			params[key] = rctx.URLParams.Values[i]
		}
		return params
	}
}
