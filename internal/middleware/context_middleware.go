package middleware

import (
	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

// ContextMiddleware resolves the interactive identity from HTTP basic credentials.
type ContextMiddleware struct {
	identity *service.IdentityService
}

func NewContextMiddleware(identity *service.IdentityService) *ContextMiddleware {
	return &ContextMiddleware{
		identity: identity,
	}
}

func (m *ContextMiddleware) Init() error {
	return nil
}

func (m *ContextMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()

		if !ok {
			c.Next()
			return
		}

		user, verified := m.identity.VerifyUser(username, password)

		if !verified {
			tlog.App.Debug().Str("username", username).Msg("Basic auth verification failed")
			c.Next()
			return
		}

		c.Set("context", &config.UserContext{
			ID:         user.ID,
			Username:   user.Username,
			Email:      user.Email,
			IsLoggedIn: true,
		})

		c.Next()
	}
}
