package service

import (
	"errors"
	"net/http"
)

const (
	ErrCodeInvalidClient           = "invalid_client"
	ErrCodeInvalidRequest          = "invalid_request"
	ErrCodeInvalidRedirectURI      = "invalid_redirect_uri"
	ErrCodeUnsupportedResponseType = "unsupported_response_type"
	ErrCodeUnsupportedGrantType    = "unsupported_grant_type"
	ErrCodeInvalidGrant            = "invalid_grant"
	ErrCodeInvalidToken            = "invalid_token"
	ErrCodeAccessDenied            = "access_denied"
	ErrCodeNotFound                = "not_found"
	ErrCodeForbidden               = "forbidden"
	ErrCodeClientLimitReached      = "client_limit_reached"
	ErrCodeServerError             = "server_error"
)

// OAuthError is a protocol level error, it is rendered as {"error", "error_description"}.
type OAuthError struct {
	Code        string
	Description string
	Status      int
}

func (e *OAuthError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// WithStatus returns a copy of the error answered with a different HTTP status.
func (e *OAuthError) WithStatus(status int) *OAuthError {
	return &OAuthError{
		Code:        e.Code,
		Description: e.Description,
		Status:      status,
	}
}

func AsOAuthError(err error) (*OAuthError, bool) {
	var oauthErr *OAuthError
	if errors.As(err, &oauthErr) {
		return oauthErr, true
	}
	return nil, false
}

func IsOAuthError(err error, code string) bool {
	oauthErr, ok := AsOAuthError(err)
	return ok && oauthErr.Code == code
}

func ErrInvalidClient(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeInvalidClient, Description: description, Status: http.StatusUnauthorized}
}

func ErrInvalidRequest(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeInvalidRequest, Description: description, Status: http.StatusBadRequest}
}

func ErrInvalidRedirectURI(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeInvalidRedirectURI, Description: description, Status: http.StatusBadRequest}
}

func ErrUnsupportedResponseType(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeUnsupportedResponseType, Description: description, Status: http.StatusBadRequest}
}

func ErrUnsupportedGrantType(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeUnsupportedGrantType, Description: description, Status: http.StatusBadRequest}
}

func ErrInvalidGrant(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeInvalidGrant, Description: description, Status: http.StatusBadRequest}
}

func ErrInvalidToken(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeInvalidToken, Description: description, Status: http.StatusUnauthorized}
}

func ErrAccessDenied(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeAccessDenied, Description: description, Status: http.StatusForbidden}
}

func ErrNotFound(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeNotFound, Description: description, Status: http.StatusNotFound}
}

func ErrForbidden(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeForbidden, Description: description, Status: http.StatusForbidden}
}

func ErrClientLimitReached(description string) *OAuthError {
	return &OAuthError{Code: ErrCodeClientLimitReached, Description: description, Status: http.StatusBadRequest}
}
