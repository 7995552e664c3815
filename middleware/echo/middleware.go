package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	objectwire "github.com/objectwire/objectwire"
	"github.com/objectwire/objectwire/middleware"
)

// ResolveJSON reads the request body as an identity graph, resolves it to
// T, stores the result in the request context on success, or responds
// 400 with the collected Issues on failure. opt defaults to
// middleware.DefaultOptions() when nil.
func ResolveJSON[T any](opt *objectwire.Options) echo.MiddlewareFunc {
	if opt == nil {
		opt = middleware.DefaultOptions()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := objectwire.ResolveAs[T](c.Request().Context(), objectwire.JSONReader(c.Request().Body), opt)
			if err != nil {
				if iss, ok := objectwire.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			ctx := middleware.ContextWithResolved(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetResolved fetches the value ResolveJSON stored on c's request context.
func GetResolved[T any](c echo.Context) (T, bool) {
	return middleware.ResolvedFromContext[T](c.Request().Context())
}
