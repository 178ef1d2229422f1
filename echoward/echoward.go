// Package echoward mounts ward handlers on echo routers.
package echoward

import (
	"github.com/labstack/echo/v4"

	"github.com/wardhttp/ward"
)

// Handler compiles b with fn and wraps the result as an echo.HandlerFunc.
// Echo's path parameters are exposed to the pipeline under ward's
// conventional context key:
//
//	e.GET("/users/:id", echoward.Handler(b.Params(idSchema), getUser))
func Handler(b *ward.Builder, fn ward.HandlerFunc) echo.HandlerFunc {
	h := b.Handler(fn)

	return func(c echo.Context) error {
		names := c.ParamNames()
		params := make(map[string]string, len(names))
		for _, name := range names {
			params[name] = c.Param(name)
		}

		r := ward.SetPathParams(c.Request(), params)
		h.ServeHTTP(c.Response(), r)
		return nil
	}
}
