package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/middleware"
)

// Decode parses the request body with the codec matching its Content-Type,
// stores the message in the request context, and on failure aborts with the
// issues payload.
func Decode(o middleware.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, status, err := middleware.DecodeRequest(c.Request, o)
		if err != nil {
			if iss, ok := aclmsg.AsIssues(err); ok {
				c.AbortWithStatusJSON(status, middleware.ErrorPayload(iss))
				return
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}
		// store decoded in request context
		c.Request = c.Request.WithContext(middleware.ContextWithMessage(c.Request.Context(), m))
		c.Next()
	}
}

// GetMessage fetches the decoded message from gin.Context.
func GetMessage(c *gin.Context) (aclmsg.ACLAccountsMessage, bool) {
	return middleware.MessageFromContext(c.Request.Context())
}
