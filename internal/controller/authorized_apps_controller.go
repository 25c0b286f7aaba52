package controller

import (
	"net/http"

	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

type BatchRevokeRequest struct {
	ClientIDs []string `json:"client_ids"`
}

type AuthorizedAppsController struct {
	router *gin.RouterGroup
	apps   *service.AuthorizedAppsService
}

func NewAuthorizedAppsController(router *gin.RouterGroup, apps *service.AuthorizedAppsService) *AuthorizedAppsController {
	return &AuthorizedAppsController{
		router: router,
		apps:   apps,
	}
}

func (controller *AuthorizedAppsController) SetupRoutes() {
	appsGroup := controller.router.Group("/authorized_apps")
	appsGroup.GET("", controller.listHandler)
	appsGroup.POST("/batch_revoke", controller.batchRevokeHandler)
	appsGroup.GET("/:client_id", controller.detailsHandler)
	appsGroup.DELETE("/:client_id", controller.revokeHandler)
}

func (controller *AuthorizedAppsController) listHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	apps, err := controller.apps.List(c.Request.Context(), user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized_apps": apps,
		"total_count":     len(apps),
	})
}

func (controller *AuthorizedAppsController) detailsHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	var req ClientURIRequest

	if err := c.ShouldBindUri(&req); err != nil {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "missing client id")
		return
	}

	details, err := controller.apps.Details(c.Request.Context(), req.ClientID, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (controller *AuthorizedAppsController) revokeHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	var req ClientURIRequest

	if err := c.ShouldBindUri(&req); err != nil {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "missing client id")
		return
	}

	client, err := controller.apps.Revoke(c.Request.Context(), req.ClientID, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	tlog.AuditAuthorizationRevoked(c, user.Username, []string{client.ClientID})

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"client_id":   client.ClientID,
		"client_name": client.Name,
	})
}

func (controller *AuthorizedAppsController) batchRevokeHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	var req BatchRevokeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		tlog.App.Debug().Err(err).Msg("Failed to bind JSON")
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "request body must be a json object")
		return
	}

	if len(req.ClientIDs) == 0 {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "client_ids must not be empty")
		return
	}

	result := controller.apps.BatchRevoke(c.Request.Context(), req.ClientIDs, user.ID)

	if result.RevokedCount > 0 {
		revoked := make([]string, 0, len(result.RevokedApps))
		for _, app := range result.RevokedApps {
			revoked = append(revoked, app.ClientID)
		}
		tlog.AuditAuthorizationRevoked(c, user.Username, revoked)
	}

	c.JSON(http.StatusOK, result)
}
