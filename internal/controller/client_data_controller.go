package controller

import (
	"encoding/json"
	"net/http"

	"github.com/steveiliop56/tinyoauth/internal/middleware"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

type ClientDataRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
	Type  string          `json:"type"`
}

type ClientDataQuery struct {
	Key string `form:"key" url:"key,omitempty"`
}

// ClientDataController exposes the scoped store. The (client, end-user) pair always comes from the bearer token.
type ClientDataController struct {
	router *gin.RouterGroup
	data   *service.DataService
	bearer *middleware.BearerMiddleware
}

func NewClientDataController(router *gin.RouterGroup, data *service.DataService, bearer *middleware.BearerMiddleware) *ClientDataController {
	return &ClientDataController{
		router: router,
		data:   data,
		bearer: bearer,
	}
}

func (controller *ClientDataController) SetupRoutes() {
	dataGroup := controller.router.Group("/oauth/client_data", controller.bearer.RequireToken())
	dataGroup.GET("", controller.getHandler)
	dataGroup.POST("", controller.putHandler)
	dataGroup.PUT("", controller.putHandler)
	dataGroup.DELETE("", controller.deleteHandler)
}

func (controller *ClientDataController) putHandler(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)

	if !ok {
		oauthError(c, http.StatusUnauthorized, service.ErrCodeInvalidToken, "invalid access token")
		return
	}

	var req ClientDataRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		tlog.App.Debug().Err(err).Msg("Failed to bind JSON")
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "request body must be a json object")
		return
	}

	if req.Key == "" {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "missing data key")
		return
	}

	value, err := service.ParseDataValue(req.Type, req.Value)

	if err != nil {
		handleError(c, err)
		return
	}

	item, err := controller.data.Put(c.Request.Context(), token, req.Key, value)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"key":     item.Key,
		"message": "data stored",
	})
}

func (controller *ClientDataController) getHandler(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)

	if !ok {
		oauthError(c, http.StatusUnauthorized, service.ErrCodeInvalidToken, "invalid access token")
		return
	}

	var query ClientDataQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "malformed query")
		return
	}

	if query.Key != "" {
		item, err := controller.data.Get(c.Request.Context(), token, query.Key)

		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, item)
		return
	}

	items, err := controller.data.List(c.Request.Context(), token)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (controller *ClientDataController) deleteHandler(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)

	if !ok {
		oauthError(c, http.StatusUnauthorized, service.ErrCodeInvalidToken, "invalid access token")
		return
	}

	var query ClientDataQuery

	if err := c.ShouldBindQuery(&query); err != nil || query.Key == "" {
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "missing data key")
		return
	}

	if err := controller.data.Delete(c.Request.Context(), token, query.Key); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "data deleted",
	})
}
