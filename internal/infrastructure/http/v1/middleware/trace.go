package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "estoque/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
)

// Trace middleware propagates request identity.
// Extracts or generates a request ID and picks up the acting user from
// headers; both flow through context into logs and the movement ledger.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = appctx.NewRequestID()
		}

		ctx := appctx.WithRequestID(c.Request.Context(), requestID)

		if actorID := c.GetHeader(HeaderActorID); actorID != "" {
			ctx = appctx.WithActor(ctx, &appctx.Actor{
				ID:   actorID,
				Name: c.GetHeader(HeaderActorName),
			})
		}

		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("request_id", requestID)

		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
