package tlog

import "github.com/gin-gonic/gin"

func AuditClientRegistered(c *gin.Context, username, clientID string) {
	Audit.Info().
		Str("event", "client_registered").
		Str("username", username).
		Str("client_id", clientID).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditClientUpdated(c *gin.Context, username, clientID string) {
	Audit.Info().
		Str("event", "client_updated").
		Str("username", username).
		Str("client_id", clientID).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditClientDeleted(c *gin.Context, username, clientID string) {
	Audit.Info().
		Str("event", "client_deleted").
		Str("username", username).
		Str("client_id", clientID).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditConsentGranted(c *gin.Context, username, clientID, scope string) {
	Audit.Info().
		Str("event", "consent").
		Str("result", "granted").
		Str("username", username).
		Str("client_id", clientID).
		Str("scope", scope).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditConsentDenied(c *gin.Context, username, clientID string) {
	Audit.Warn().
		Str("event", "consent").
		Str("result", "denied").
		Str("username", username).
		Str("client_id", clientID).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditTokenIssued(c *gin.Context, clientID string, identityID int64) {
	Audit.Info().
		Str("event", "token_issued").
		Str("client_id", clientID).
		Int64("identity_id", identityID).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditTokenExchangeFailure(c *gin.Context, clientID, reason string) {
	Audit.Warn().
		Str("event", "token_issued").
		Str("result", "failure").
		Str("client_id", clientID).
		Str("reason", reason).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditTokenRevoked(c *gin.Context, hint string) {
	Audit.Info().
		Str("event", "token_revoked").
		Str("hint", hint).
		Str("ip", c.ClientIP()).
		Send()
}

func AuditAuthorizationRevoked(c *gin.Context, username string, clientIDs []string) {
	Audit.Info().
		Str("event", "authorization_revoked").
		Str("username", username).
		Strs("client_ids", clientIDs).
		Str("ip", c.ClientIP()).
		Send()
}
