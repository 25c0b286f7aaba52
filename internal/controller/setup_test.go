package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/steveiliop56/tinyoauth/internal/bootstrap"
	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/controller"
	"github.com/steveiliop56/tinyoauth/internal/middleware"
	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
	"gotest.tools/v3/assert"
)

// Password for every test user is "test"
const testPasswordHash = "$2a$10$ne6z693sTgzT3ePoQ05PgOecUHnBjM7sSNj6M.l5CLUP.f6NyCnt."

const testRedirectURI = "https://app.example.com/callback"

type credentials struct {
	username string
	password string
}

var (
	ownerUser = credentials{username: "testuser", password: "test"}
	otherUser = credentials{username: "otheruser", password: "test"}
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	tlog.NewSimpleLogger().Init()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	app := bootstrap.NewBootstrapApp(config.Config{})

	db, err := app.SetupDatabase(":memory:")
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })

	store := repository.NewStore(db)

	identity := service.NewIdentityService(service.IdentityServiceConfig{
		Users: []config.User{
			{ID: 1, Username: "testuser", Password: testPasswordHash, Email: "testuser@example.com"},
			{ID: 2, Username: "otheruser", Password: testPasswordHash},
		},
	})
	assert.NilError(t, identity.Init())

	clients := service.NewClientService(service.ClientServiceConfig{MaxClientsPerOwner: -1}, store, nil)
	assert.NilError(t, clients.Init())

	grants := service.NewGrantService(service.GrantServiceConfig{CodeExpiry: 600}, store, clients, nil)
	assert.NilError(t, grants.Init())

	tokens := service.NewTokenService(service.TokenServiceConfig{TokenExpiryDays: 30}, store, clients, nil)
	assert.NilError(t, tokens.Init())

	data := service.NewDataService(service.DataServiceConfig{}, store, clients, nil)
	assert.NilError(t, data.Init())

	apps := service.NewAuthorizedAppsService(service.AuthorizedAppsServiceConfig{}, store, clients, data, nil)
	assert.NilError(t, apps.Init())

	contextMiddleware := middleware.NewContextMiddleware(identity)
	assert.NilError(t, contextMiddleware.Init())
	router.Use(contextMiddleware.Middleware())

	bearer := middleware.NewBearerMiddleware(tokens, identity)
	assert.NilError(t, bearer.Init())

	root := &router.RouterGroup
	api := router.Group("/api")

	controller.NewOAuthController(root, grants, tokens, identity, bearer).SetupRoutes()
	controller.NewClientDataController(root, data, bearer).SetupRoutes()
	controller.NewContextController(api, bearer).SetupRoutes()
	controller.NewClientController(api, clients, data).SetupRoutes()
	controller.NewAuthorizedAppsController(api, apps).SetupRoutes()
	controller.NewHealthController(api).SetupRoutes()

	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func newJSONRequest(t *testing.T, method string, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		assert.NilError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, target, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

func newFormRequest(t *testing.T, target string, form any) *http.Request {
	t.Helper()

	values, err := query.Values(form)
	assert.NilError(t, err)

	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func asUser(req *http.Request, user credentials) *http.Request {
	req.SetBasicAuth(user.username, user.password)
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	assert.NilError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func assertErrorCode(t *testing.T, recorder *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, recorder.Code)
	assert.Equal(t, code, decode(t, recorder)["error"])
}

func registerClient(t *testing.T, router *gin.Engine, owner credentials) service.Client {
	t.Helper()

	req := asUser(newJSONRequest(t, "POST", "/api/clients", controller.RegisterClientRequest{
		Name:         "Test App",
		RedirectURIs: []string{testRedirectURI},
	}), owner)

	recorder := serve(router, req)
	assert.Equal(t, 201, recorder.Code)

	var client service.Client
	assert.NilError(t, json.Unmarshal(recorder.Body.Bytes(), &client))

	return client
}

func authorizeQuery(t *testing.T, client service.Client, state string) string {
	t.Helper()

	values, err := query.Values(controller.AuthorizeRequest{
		ClientID:     client.ClientID,
		RedirectURI:  testRedirectURI,
		ResponseType: "code",
		Scope:        "profile",
		State:        state,
	})
	assert.NilError(t, err)

	return values.Encode()
}

func grantCode(t *testing.T, router *gin.Engine, client service.Client, user credentials) string {
	t.Helper()

	req := httptest.NewRequest("POST", "/oauth/authorize?"+authorizeQuery(t, client, ""), strings.NewReader("confirm=yes"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := serve(router, asUser(req, user))
	assert.Equal(t, 302, recorder.Code)

	location, err := url.Parse(recorder.Header().Get("Location"))
	assert.NilError(t, err)

	return location.Query().Get("code")
}

func exchangeCode(t *testing.T, router *gin.Engine, client service.Client, code string) *httptest.ResponseRecorder {
	t.Helper()

	return serve(router, newFormRequest(t, "/oauth/token", controller.TokenRequest{
		GrantType:    "authorization_code",
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		Code:         code,
		RedirectURI:  testRedirectURI,
	}))
}

func issueToken(t *testing.T, router *gin.Engine, client service.Client, user credentials) string {
	t.Helper()

	recorder := exchangeCode(t, router, client, grantCode(t, router, client, user))
	assert.Equal(t, 200, recorder.Code)

	token, ok := decode(t, recorder)["access_token"].(string)
	assert.Assert(t, ok)

	return token
}
