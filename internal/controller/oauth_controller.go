package controller

import (
	"net/http"
	"strconv"

	"github.com/steveiliop56/tinyoauth/internal/middleware"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
)

type AuthorizeRequest struct {
	ClientID     string `form:"client_id" url:"client_id"`
	RedirectURI  string `form:"redirect_uri" url:"redirect_uri"`
	ResponseType string `form:"response_type" url:"response_type"`
	Scope        string `form:"scope" url:"scope,omitempty"`
	State        string `form:"state" url:"state,omitempty"`
}

type TokenRequest struct {
	GrantType    string `form:"grant_type" url:"grant_type"`
	ClientID     string `form:"client_id" url:"client_id,omitempty"`
	ClientSecret string `form:"client_secret" url:"client_secret,omitempty"`
	Code         string `form:"code" url:"code"`
	RedirectURI  string `form:"redirect_uri" url:"redirect_uri"`
}

type RevokeRequest struct {
	Token         string `form:"token" url:"token"`
	TokenTypeHint string `form:"token_type_hint" url:"token_type_hint,omitempty"`
}

type OAuthController struct {
	router   *gin.RouterGroup
	grants   *service.GrantService
	tokens   *service.TokenService
	identity *service.IdentityService
	bearer   *middleware.BearerMiddleware
}

func NewOAuthController(router *gin.RouterGroup, grants *service.GrantService, tokens *service.TokenService, identity *service.IdentityService, bearer *middleware.BearerMiddleware) *OAuthController {
	return &OAuthController{
		router:   router,
		grants:   grants,
		tokens:   tokens,
		identity: identity,
		bearer:   bearer,
	}
}

func (controller *OAuthController) SetupRoutes() {
	oauthGroup := controller.router.Group("/oauth")
	oauthGroup.GET("/authorize", controller.authorizeHandler)
	oauthGroup.POST("/authorize", controller.consentHandler)
	oauthGroup.POST("/token", controller.tokenHandler)
	oauthGroup.POST("/revoke", controller.revokeHandler)
	oauthGroup.GET("/userinfo", controller.bearer.RequireToken(), controller.userinfoHandler)
}

func (controller *OAuthController) bindAuthorizeRequest(c *gin.Context) (service.AuthorizationRequest, bool) {
	var req AuthorizeRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		tlog.App.Error().Err(err).Msg("Failed to bind query")
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "malformed authorization request")
		return service.AuthorizationRequest{}, false
	}

	return service.AuthorizationRequest{
		ClientID:     req.ClientID,
		RedirectURI:  req.RedirectURI,
		ResponseType: req.ResponseType,
		Scope:        req.Scope,
		State:        req.State,
	}, true
}

func (controller *OAuthController) authorizeHandler(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}

	req, ok := controller.bindAuthorizeRequest(c)

	if !ok {
		return
	}

	consent, err := controller.grants.Begin(c.Request.Context(), req)

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, consent)
}

func (controller *OAuthController) consentHandler(c *gin.Context) {
	user, ok := requireIdentity(c)

	if !ok {
		return
	}

	req, ok := controller.bindAuthorizeRequest(c)

	if !ok {
		return
	}

	if _, confirmed := c.GetPostForm("confirm"); !confirmed {
		err := controller.grants.Deny(c.Request.Context(), req)
		if service.IsOAuthError(err, service.ErrCodeAccessDenied) {
			tlog.AuditConsentDenied(c, user.Username, req.ClientID)
		}
		handleError(c, err)
		return
	}

	location, err := controller.grants.Grant(c.Request.Context(), req, user.ID)

	if err != nil {
		handleError(c, err)
		return
	}

	tlog.AuditConsentGranted(c, user.Username, req.ClientID, req.Scope)

	c.Redirect(http.StatusFound, location)
}

func (controller *OAuthController) tokenHandler(c *gin.Context) {
	var req TokenRequest

	if err := c.ShouldBind(&req); err != nil {
		tlog.App.Error().Err(err).Msg("Failed to bind form")
		oauthError(c, http.StatusBadRequest, service.ErrCodeInvalidRequest, "malformed token request")
		return
	}

	// client_secret_basic takes precedence over client_secret_post
	if clientID, clientSecret, ok := c.Request.BasicAuth(); ok {
		req.ClientID = clientID
		req.ClientSecret = clientSecret
	}

	res, token, err := controller.tokens.Exchange(c.Request.Context(), service.ExchangeRequest{
		GrantType:    req.GrantType,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Code:         req.Code,
		RedirectURI:  req.RedirectURI,
	})

	if err != nil {
		if oauthErr, ok := service.AsOAuthError(err); ok {
			tlog.AuditTokenExchangeFailure(c, req.ClientID, oauthErr.Code)
		}
		handleError(c, err)
		return
	}

	tlog.AuditTokenIssued(c, token.ClientID, token.IdentityID)

	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusOK, res)
}

func (controller *OAuthController) revokeHandler(c *gin.Context) {
	var req RevokeRequest

	if err := c.ShouldBind(&req); err != nil {
		tlog.App.Debug().Err(err).Msg("Failed to bind revocation form")
	}

	if err := controller.tokens.Revoke(c.Request.Context(), req.Token, req.TokenTypeHint); err != nil {
		handleError(c, err)
		return
	}

	tlog.AuditTokenRevoked(c, req.TokenTypeHint)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

func (controller *OAuthController) userinfoHandler(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)

	if !ok {
		oauthError(c, http.StatusUnauthorized, service.ErrCodeInvalidToken, "invalid access token")
		return
	}

	user, exists := controller.identity.GetUserByID(token.IdentityID)

	if !exists {
		oauthError(c, http.StatusNotFound, service.ErrCodeNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"email":    user.Email,
	})
}
