// Package ward wraps HTTP route handlers with declarative request
// validation and request-scoped middleware composition. It is a thin
// convenience layer over whatever router actually serves the request —
// net/http's ServeMux, chi, or echo — and performs no routing, networking,
// or state management of its own.
//
// A Builder accumulates schemas for the three request slots (path params,
// query string, JSON body) and an ordered list of middleware steps, then
// compiles everything into a single http.HandlerFunc:
//
//	h := ward.New().
//	    Params(schema.Object(schema.Field("id", schema.UUID()).Required())).
//	    Use(authStep).
//	    Handler(func(ctx context.Context, req *ward.Request) (any, error) {
//	        params := req.Params.(map[string]any)
//	        return map[string]any{"id": params["id"]}, nil
//	    })
//
// Every chained call returns a new Builder, so a partially-configured
// builder is safe to reuse as a template for multiple routes.
//
// Validation runs in a fixed order — params, then query, then body — and
// the first failing slot short-circuits the pipeline with a 400 response
// naming the slot. Schemas are opaque to the builder; they are interpreted
// by a pluggable Adapter. The bundled default understands the schema
// subpackage, and the playground and jsonschema subpackages adapt
// go-playground/validator and JSON Schema engines to the same contract.
package ward
