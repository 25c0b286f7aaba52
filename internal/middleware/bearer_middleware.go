package middleware

import (
	"net/http"
	"strings"

	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenKey   = "access_token"
	TokenIdentityKey = "token_identity"
	bearerPrefix     = "Bearer "
)

// BearerMiddleware resolves "Authorization: Bearer <token>" into a token record and its identity.
type BearerMiddleware struct {
	tokens   *service.TokenService
	identity *service.IdentityService
}

func NewBearerMiddleware(tokens *service.TokenService, identity *service.IdentityService) *BearerMiddleware {
	return &BearerMiddleware{
		tokens:   tokens,
		identity: identity,
	}
}

func (m *BearerMiddleware) Init() error {
	return nil
}

// RequireToken rejects the request with 401 invalid_token unless a valid token is presented.
func (m *BearerMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.resolve(c); err != nil {
			if oauthErr, ok := service.AsOAuthError(err); ok {
				c.AbortWithStatusJSON(oauthErr.Status, gin.H{
					"error":             oauthErr.Code,
					"error_description": oauthErr.Description,
				})
				return
			}
			tlog.App.Error().Err(err).Msg("Failed to validate access token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":             service.ErrCodeServerError,
				"error_description": "internal server error",
			})
			return
		}
		c.Next()
	}
}

// OptionalToken attaches the token when valid and otherwise lets the request through unauthenticated.
func (m *BearerMiddleware) OptionalToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.resolve(c); err != nil {
			if _, ok := service.AsOAuthError(err); !ok {
				tlog.App.Error().Err(err).Msg("Failed to validate access token")
			}
		}
		c.Next()
	}
}

func (m *BearerMiddleware) resolve(c *gin.Context) error {
	header := c.GetHeader("Authorization")

	if !strings.HasPrefix(header, bearerPrefix) {
		return service.ErrInvalidToken("missing bearer token")
	}

	token, err := m.tokens.Validate(c.Request.Context(), strings.TrimPrefix(header, bearerPrefix))

	if err != nil {
		return err
	}

	identity := &config.UserContext{
		ID:         token.IdentityID,
		IsLoggedIn: true,
	}

	if user, ok := m.identity.GetUserByID(token.IdentityID); ok {
		identity.Username = user.Username
		identity.Email = user.Email
	}

	c.Set(AccessTokenKey, &token)
	c.Set(TokenIdentityKey, identity)

	return nil
}

func GetAccessToken(c *gin.Context) (service.AccessToken, bool) {
	value, exists := c.Get(AccessTokenKey)

	if !exists {
		return service.AccessToken{}, false
	}

	token, ok := value.(*service.AccessToken)

	if !ok {
		return service.AccessToken{}, false
	}

	return *token, true
}

func GetTokenIdentity(c *gin.Context) (config.UserContext, bool) {
	value, exists := c.Get(TokenIdentityKey)

	if !exists {
		return config.UserContext{}, false
	}

	identity, ok := value.(*config.UserContext)

	if !ok {
		return config.UserContext{}, false
	}

	return *identity, true
}
