package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// skippedPrefixes are never reported to analytics.
var skippedPrefixes = []string{"/health", "/swagger"}

// PosthogMiddleware reports each successful authenticated API call as an event named after its
// route template, e.g. "POST /api/v1/employees/:id/transactions" becomes "api_v1_employees_id_transactions_post".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || isSkipped(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := routeEventName(c.FullPath(), c.Request.Method)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		// entity IDs are useful for funnels; amounts and names never leave the service
		for _, param := range c.Params {
			props[param.Key] = param.Value
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

func isSkipped(path string) bool {
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func routeEventName(fullPath, method string) string {
	path := strings.Trim(fullPath, "/")
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, ":", "")
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "-", "_")
	return path + "_" + strings.ToLower(method)
}
