package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/services/auth"
)

// ContextPatientKey is where the authenticated patient is stored on the
// request context.
const ContextPatientKey = "patient"

// ContextTokenKey holds the raw bearer token for handlers that need to
// close the session they rode in on.
const ContextTokenKey = "authToken"

// PatientAuthMiddleware validates the bearer token against the auth gateway
// and attaches the resolved patient to the request context.
func PatientAuthMiddleware(gateway auth.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		patient, err := gateway.CurrentUser(c.Request.Context(), token)
		if err != nil {
			zap.L().Debug("auth rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(ContextPatientKey, patient)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}
