package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	objectwire "github.com/objectwire/objectwire"
	"github.com/objectwire/objectwire/middleware"
)

// ResolveJSON reads the request body as an identity graph, resolves it to
// T, stores the result on the request context on success, or responds
// 400 with the collected Issues on failure. opt defaults to
// middleware.DefaultOptions() when nil.
func ResolveJSON[T any](opt *objectwire.Options) gin.HandlerFunc {
	if opt == nil {
		opt = middleware.DefaultOptions()
	}
	return func(c *gin.Context) {
		v, err := objectwire.ResolveAs[T](c.Request.Context(), objectwire.JSONReader(c.Request.Body), opt)
		if err != nil {
			if iss, ok := objectwire.AsIssues(err); ok {
				c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				c.Abort()
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithResolved(c.Request.Context(), v))
		c.Next()
	}
}

// GetResolved fetches the value ResolveJSON stored on c's request context.
func GetResolved[T any](c *gin.Context) (T, bool) {
	return middleware.ResolvedFromContext[T](c.Request.Context())
}
