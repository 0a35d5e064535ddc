package middleware

import "github.com/gin-gonic/gin"

// playerIDKey is the key used to store the authenticated player's ID in the request context.
const playerIDKey = contextKey("playerID")

// GetPlayerIDFromContext retrieves the authenticated player ID from the Gin context.
// It returns the player ID and a boolean indicating if it was found.
func GetPlayerIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(playerIDKey); v != nil {
		if playerID, ok := v.(string); ok {
			return playerID, true
		}
	}
	return "", false
}
