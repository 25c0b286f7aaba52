package controller

import (
	"net/http"

	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

func oauthError(c *gin.Context, status int, code string, description string) {
	c.JSON(status, gin.H{
		"error":             code,
		"error_description": description,
	})
}

// handleError renders protocol errors as is and hides everything else behind server_error.
func handleError(c *gin.Context, err error) {
	if oauthErr, ok := service.AsOAuthError(err); ok {
		oauthError(c, oauthErr.Status, oauthErr.Code, oauthErr.Description)
		return
	}

	tlog.App.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	oauthError(c, http.StatusInternalServerError, service.ErrCodeServerError, "internal server error")
}

// requireIdentity returns the interactive identity or answers 401.
func requireIdentity(c *gin.Context) (config.UserContext, bool) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.Header("WWW-Authenticate", `Basic realm="tinyoauth"`)
		oauthError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return config.UserContext{}, false
	}

	return context, true
}
