package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// userNameKey is the key used to store the authenticated user's display name,
// recorded as the actor on audit entries.
const userNameKey = contextKey("userName")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetActorFromContext returns the display name recorded for audit entries,
// falling back to "Admin" to match the front end's default actor.
func GetActorFromContext(c *gin.Context) string {
	nameVal, exists := c.Get(string(userNameKey))
	if exists {
		if name, ok := nameVal.(string); ok && name != "" {
			return name
		}
	}
	return "Admin"
}
