package controller_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/steveiliop56/tinyoauth/internal/controller"

	"gotest.tools/v3/assert"
)

func TestClientDataHandlers(t *testing.T) {
	router := setupRouter(t)
	client := registerClient(t, router, ownerUser)
	token := issueToken(t, router, client, otherUser)

	recorder := serve(router, withBearer(newJSONRequest(t, "PUT", "/oauth/client_data", controller.ClientDataRequest{
		Key:   "theme",
		Value: []byte(`"dark"`),
	}), token))
	assert.Equal(t, 200, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "theme", body["key"])

	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data?key=theme", nil), token))
	assert.Equal(t, 200, recorder.Code)

	body = decode(t, recorder)
	assert.Equal(t, "dark", body["value"])
	assert.Equal(t, "string", body["type"])

	// Overwrite with another type
	recorder = serve(router, withBearer(newJSONRequest(t, "POST", "/oauth/client_data", controller.ClientDataRequest{
		Key:   "theme",
		Value: []byte(`{"mode":"light"}`),
		Type:  "object",
	}), token))
	assert.Equal(t, 200, recorder.Code)

	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data", nil), token))
	assert.Equal(t, 200, recorder.Code)
	assert.Assert(t, strings.Contains(recorder.Body.String(), `"value":{"mode":"light"}`))
	assert.Assert(t, strings.Contains(recorder.Body.String(), `"type":"object"`))

	recorder = serve(router, withBearer(httptest.NewRequest("DELETE", "/oauth/client_data?key=theme", nil), token))
	assert.Equal(t, 200, recorder.Code)

	recorder = serve(router, withBearer(httptest.NewRequest("DELETE", "/oauth/client_data?key=theme", nil), token))
	assertErrorCode(t, recorder, 404, "not_found")

	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data?key=theme", nil), token))
	assertErrorCode(t, recorder, 404, "not_found")
}

func TestClientDataValidation(t *testing.T) {
	router := setupRouter(t)
	client := registerClient(t, router, ownerUser)
	token := issueToken(t, router, client, ownerUser)

	type testCase struct {
		description string
		request     controller.ClientDataRequest
	}

	tests := []testCase{
		{
			description: "Missing key",
			request:     controller.ClientDataRequest{Value: []byte(`"x"`)},
		},
		{
			description: "Missing value",
			request:     controller.ClientDataRequest{Key: "k"},
		},
		{
			description: "Number mismatch",
			request:     controller.ClientDataRequest{Key: "k", Value: []byte(`"ten"`), Type: "number"},
		},
		{
			description: "Invalid datetime",
			request:     controller.ClientDataRequest{Key: "k", Value: []byte(`"yesterday"`), Type: "datetime"},
		},
		{
			description: "Unknown type",
			request:     controller.ClientDataRequest{Key: "k", Value: []byte(`1`), Type: "blob"},
		},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			recorder := serve(router, withBearer(newJSONRequest(t, "PUT", "/oauth/client_data", test.request), token))
			assertErrorCode(t, recorder, 400, "invalid_request")
		})
	}

	recorder := serve(router, withBearer(httptest.NewRequest("DELETE", "/oauth/client_data", nil), token))
	assertErrorCode(t, recorder, 400, "invalid_request")
}

func TestClientDataIsolation(t *testing.T) {
	router := setupRouter(t)
	first := registerClient(t, router, ownerUser)
	second := registerClient(t, router, ownerUser)

	firstToken := issueToken(t, router, first, otherUser)
	secondToken := issueToken(t, router, second, otherUser)
	ownerToken := issueToken(t, router, first, ownerUser)

	recorder := serve(router, withBearer(newJSONRequest(t, "PUT", "/oauth/client_data", controller.ClientDataRequest{
		Key:   "secret",
		Value: []byte(`true`),
		Type:  "boolean",
	}), firstToken))
	assert.Equal(t, 200, recorder.Code)

	// Another client, same end-user
	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data?key=secret", nil), secondToken))
	assertErrorCode(t, recorder, 404, "not_found")

	// Same client, another end-user
	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data?key=secret", nil), ownerToken))
	assertErrorCode(t, recorder, 404, "not_found")

	recorder = serve(router, httptest.NewRequest("GET", "/oauth/client_data", nil))
	assertErrorCode(t, recorder, 401, "invalid_token")

	recorder = serve(router, withBearer(httptest.NewRequest("GET", "/oauth/client_data", nil), "unknown"))
	assertErrorCode(t, recorder, 401, "invalid_token")
}
