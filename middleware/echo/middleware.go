package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/middleware"
)

// Decode parses the request body with the codec matching its Content-Type,
// stores the message in context on success, or returns the issues payload.
func Decode(o middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m, status, err := middleware.DecodeRequest(c.Request(), o)
			if err != nil {
				if iss, ok := aclmsg.AsIssues(err); ok {
					return c.JSON(status, middleware.ErrorPayload(iss))
				}
				return c.JSON(status, map[string]any{"error": err.Error()})
			}
			ctx := middleware.ContextWithMessage(c.Request().Context(), m)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetMessage fetches the decoded message from echo.Context.
func GetMessage(c echo.Context) (aclmsg.ACLAccountsMessage, bool) {
	return middleware.MessageFromContext(c.Request().Context())
}
