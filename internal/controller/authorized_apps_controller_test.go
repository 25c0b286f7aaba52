package controller_test

import (
	"net/http/httptest"
	"testing"

	"github.com/steveiliop56/tinyoauth/internal/controller"

	"gotest.tools/v3/assert"
)

func TestAuthorizedAppsHandlers(t *testing.T) {
	router := setupRouter(t)
	client := registerClient(t, router, ownerUser)
	token := issueToken(t, router, client, otherUser)

	recorder := serve(router, withBearer(newJSONRequest(t, "PUT", "/oauth/client_data", controller.ClientDataRequest{
		Key:   "theme",
		Value: []byte(`"dark"`),
	}), token))
	assert.Equal(t, 200, recorder.Code)

	recorder = serve(router, asUser(httptest.NewRequest("GET", "/api/authorized_apps", nil), otherUser))
	assert.Equal(t, 200, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, float64(1), body["total_count"])

	app := body["authorized_apps"].([]any)[0].(map[string]any)
	assert.Equal(t, client.ClientID, app["client_id"])
	assert.Equal(t, "Test App", app["client_name"])
	assert.Equal(t, true, app["is_active"])
	assert.Equal(t, "profile", app["scope"])

	// The owner never authorized anything
	recorder = serve(router, asUser(httptest.NewRequest("GET", "/api/authorized_apps", nil), ownerUser))
	assert.Equal(t, 200, recorder.Code)
	assert.Equal(t, float64(0), decode(t, recorder)["total_count"])

	recorder = serve(router, asUser(httptest.NewRequest("GET", "/api/authorized_apps/"+client.ClientID, nil), otherUser))
	assert.Equal(t, 200, recorder.Code)

	body = decode(t, recorder)
	current := body["current_authorization"].(map[string]any)
	assert.Equal(t, true, current["has_active_token"])
	assert.Equal(t, 1, len(body["auth_history"].([]any)))
	stored := body["stored_data"].(map[string]any)
	assert.Equal(t, float64(1), stored["count"])
	assert.DeepEqual(t, []any{"theme"}, stored["keys"])

	recorder = serve(router, asUser(httptest.NewRequest("DELETE", "/api/authorized_apps/"+client.ClientID, nil), otherUser))
	assert.Equal(t, 200, recorder.Code)
	assert.Equal(t, "success", decode(t, recorder)["status"])

	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data", nil), token))
	assertErrorCode(t, recorder, 401, "invalid_token")

	// Data survives revocation and is visible again after a new grant
	newToken := issueToken(t, router, client, otherUser)

	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data?key=theme", nil), newToken))
	assert.Equal(t, 200, recorder.Code)
	assert.Equal(t, "dark", decode(t, recorder)["value"])
}

func TestRevokeBurnsPendingCodes(t *testing.T) {
	router := setupRouter(t)
	client := registerClient(t, router, ownerUser)
	code := grantCode(t, router, client, otherUser)

	recorder := serve(router, asUser(httptest.NewRequest("DELETE", "/api/authorized_apps/"+client.ClientID, nil), otherUser))
	assert.Equal(t, 200, recorder.Code)

	recorder = exchangeCode(t, router, client, code)
	assertErrorCode(t, recorder, 400, "invalid_grant")
}

func TestBatchRevokeHandler(t *testing.T) {
	router := setupRouter(t)
	first := registerClient(t, router, ownerUser)
	second := registerClient(t, router, ownerUser)

	firstToken := issueToken(t, router, first, otherUser)
	secondToken := issueToken(t, router, second, otherUser)

	recorder := serve(router, asUser(newJSONRequest(t, "POST", "/api/authorized_apps/batch_revoke", controller.BatchRevokeRequest{
		ClientIDs: []string{first.ClientID, second.ClientID, "unknown"},
	}), otherUser))
	assert.Equal(t, 200, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, float64(2), body["revoked_count"])
	assert.Equal(t, float64(1), body["failed_count"])

	failed := body["failed_apps"].([]any)[0].(map[string]any)
	assert.Equal(t, "unknown", failed["client_id"])

	for _, token := range []string{firstToken, secondToken} {
		recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/userinfo", nil), token))
		assertErrorCode(t, recorder, 401, "invalid_token")
	}

	recorder = serve(router, asUser(newJSONRequest(t, "POST", "/api/authorized_apps/batch_revoke", controller.BatchRevokeRequest{}), otherUser))
	assertErrorCode(t, recorder, 400, "invalid_request")
}
