package controller

import (
	"net/http"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/middleware"
	"github.com/steveiliop56/tinyoauth/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserContextResponse struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	ID         int64  `json:"id,omitempty"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
}

type TokenContextResponse struct {
	Active    bool       `json:"active"`
	ClientID  string     `json:"client_id,omitempty"`
	Scope     string     `json:"scope,omitempty"`
	Username  string     `json:"username,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ContextController struct {
	router *gin.RouterGroup
	bearer *middleware.BearerMiddleware
}

func NewContextController(router *gin.RouterGroup, bearer *middleware.BearerMiddleware) *ContextController {
	return &ContextController{
		router: router,
		bearer: bearer,
	}
}

func (controller *ContextController) SetupRoutes() {
	contextGroup := controller.router.Group("/context")
	contextGroup.GET("/user", controller.userContextHandler)
	contextGroup.GET("/token", controller.bearer.OptionalToken(), controller.tokenContextHandler)
}

func (controller *ContextController) userContextHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(http.StatusOK, UserContextResponse{})
		return
	}

	c.JSON(http.StatusOK, UserContextResponse{
		IsLoggedIn: true,
		ID:         context.ID,
		Username:   context.Username,
		Email:      context.Email,
	})
}

func (controller *ContextController) tokenContextHandler(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)

	if !ok {
		c.JSON(http.StatusOK, TokenContextResponse{})
		return
	}

	identity, _ := middleware.GetTokenIdentity(c)

	c.JSON(http.StatusOK, TokenContextResponse{
		Active:    true,
		ClientID:  token.ClientID,
		Scope:     token.Scope,
		Username:  identity.Username,
		ExpiresAt: &token.ExpiresAt,
	})
}
