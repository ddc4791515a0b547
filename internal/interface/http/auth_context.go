package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/domain/session"
)

const identityKey = "session_identity"

func setIdentity(c *gin.Context, identity session.Identity) {
	c.Set(identityKey, identity)
}

func getIdentity(c *gin.Context) (session.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return session.Identity{}, false
	}
	identity, ok := value.(session.Identity)
	return identity, ok
}
