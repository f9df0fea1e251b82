package middleware

import (
	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/shared/contextutil"
	"go-fieldtrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// SessionSource is anything that knows the signed-in user.
type SessionSource interface {
	Session() (domain.User, bool)
}

// RequireSession rejects requests made while nobody is signed in and
// exposes the session user's id and role to later handlers.
func RequireSession(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessions.Session()
		if !ok {
			e := autherrors.ErrNoSession
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, string(user.Role))

		ctx := contextutil.WithUserID(c.Request.Context(), user.ID)
		l := contextutil.GetLogger(ctx, nil)
		ctx = contextutil.WithLogger(ctx, l.With(zap.String("user_id", user.ID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
