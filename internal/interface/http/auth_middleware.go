package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/domain/session"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// sessionMiddleware gates dashboard routes on an established session. The shell owns the
// credential, so requests carry no Authorization header of their own.
func sessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.Authenticated() {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeNotAuthenticated, "Please log in first", nil))
			return
		}
		setIdentity(c, sessions.CurrentIdentity())
		c.Next()
	}
}
