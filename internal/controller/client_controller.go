package controller

import (
	"net/http"

	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

type ClientURIRequest struct {
	ClientID string `uri:"client_id" binding:"required"`
}

type RegisterClientRequest struct {
	Name         string   `json:"name"`
	RedirectURIs []string `json:"redirect_uris"`
}

type UpdateClientRequest struct {
	Name         *string  `json:"name"`
	RedirectURIs []string `json:"redirect_uris"`
}

type OwnerDataItemQuery struct {
	Key        string `form:"key" url:"key"`
	IdentityID *int64 `form:"identity_id" url:"identity_id,omitempty"`
}

// ClientController is the owner facing client registry.
type ClientController struct {
	router  *gin.RouterGroup
	clients *service.ClientService
	data    *service.DataService
}

func NewClientController(router *gin.RouterGroup, clients *service.ClientService, data *service.DataService) *ClientController {
	return &ClientController{
		router:  router,
		clients: clients,
		data:    data,
	}
}

func (controller *ClientController) SetupRoutes() {
	clientsGroup := controller.router.Group("/clients")
	clientsGroup.GET("", controller.listHandler)
	clientsGroup.POST("", controller.registerHandler)
	clientsGroup.GET("/:client_id", controller.getHandler)
	clientsGroup.PATCH("/:client_id", controller.updateHandler)
	clientsGroup.DELETE("/:client_id", controller.deleteHandler)
	clientsGroup.GET("/:client_id/data", controller.listDataHandler)
	clientsGroup.DELETE("/:client_id/data", controller.deleteDataHandler)
	clientsGroup.DELETE("/:client_id/data/item", controller.deleteDataItemHandler)
}

func (controller *ClientController) bindClientURI(c *gin.Context) (string, bool) {
	var req ClientURIRequest

	if err := c.ShouldBindUri(&req); err != nil {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "missing client id")
		return "", false
	}

	return req.ClientID, true
}

func (controller *ClientController) listHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clients, err := controller.clients.List(c.Request.Context(), user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	public := make([]service.Client, 0, len(clients))

	for _, client := range clients {
		public = append(public, client.Public())
	}

	c.JSON(http.StatusOK, gin.H{
		"clients":     public,
		"total_count": len(public),
	})
}

func (controller *ClientController) registerHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	var req RegisterClientRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		tlog.App.Debug().Err(err).Msg("Failed to bind JSON")
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "request body must be a json object")
		return
	}

	client, err := controller.clients.Register(c.Request.Context(), req.Name, req.RedirectURIs, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	tlog.AuditClientRegistered(c, user.Username, client.ClientID)

	c.JSON(http.StatusCreated, client)
}

func (controller *ClientController) getHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clientID, ok := controller.bindClientURI(c)

	if !ok {
		return
	}

	client, err := controller.clients.GetOwned(c.Request.Context(), clientID, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (controller *ClientController) updateHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clientID, ok := controller.bindClientURI(c)

	if !ok {
		return
	}

	var req UpdateClientRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		tlog.App.Debug().Err(err).Msg("Failed to bind JSON")
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "request body must be a json object")
		return
	}

	client, err := controller.clients.Update(c.Request.Context(), clientID, user.ID, service.ClientUpdate{
		Name:         req.Name,
		RedirectURIs: req.RedirectURIs,
	})

	if err != nil {
		handleError(c, err)
		return
	}

	tlog.AuditClientUpdated(c, user.Username, clientID)

	c.JSON(http.StatusOK, client)
}

func (controller *ClientController) deleteHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clientID, ok := controller.bindClientURI(c)

	if !ok {
		return
	}

	if err := controller.clients.Delete(c.Request.Context(), clientID, user.ID); err != nil {
		handleError(c, err)
		return
	}

	tlog.AuditClientDeleted(c, user.Username, clientID)

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"client_id": clientID,
	})
}

func (controller *ClientController) listDataHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clientID, ok := controller.bindClientURI(c)

	if !ok {
		return
	}

	items, err := controller.data.ListForOwner(c.Request.Context(), clientID, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_id":   clientID,
		"items":       items,
		"total_count": len(items),
	})
}

func (controller *ClientController) deleteDataHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clientID, ok := controller.bindClientURI(c)

	if !ok {
		return
	}

	deleted, err := controller.data.DeleteAllForOwner(c.Request.Context(), clientID, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"deleted_count": deleted,
	})
}

func (controller *ClientController) deleteDataItemHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	clientID, ok := controller.bindClientURI(c)

	if !ok {
		return
	}

	var query OwnerDataItemQuery

	if err := c.ShouldBindQuery(&query); err != nil || query.Key == "" {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "missing data key")
		return
	}

	identityID := user.ID

	if query.IdentityID != nil {
		identityID = *query.IdentityID
	}

	if err := controller.data.DeleteItemForOwner(c.Request.Context(), clientID, user.ID, identityID, query.Key); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
